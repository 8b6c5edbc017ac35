// Package dispatcher builds the handler chain for each line of a script and
// runs it. It is the single entry point from the transformer into the
// handlers.
package dispatcher

import (
	"strings"

	"github.com/arthur-debert/pwtransformer/pkg/errors"
	"github.com/arthur-debert/pwtransformer/pkg/handlers"
	"github.com/arthur-debert/pwtransformer/pkg/logging"
	"github.com/arthur-debert/pwtransformer/pkg/rules"
	"github.com/arthur-debert/pwtransformer/pkg/textutil"
)

// Build returns the chain for line. The test-start and file-name handlers
// run alone; every other line goes through the fill handler when it holds a
// fill-like call, the last-line handler when it ends the script, and always
// the default handler.
func Build(rs *rules.RuleSet, line string, last bool) []handlers.Handler {
	m := rs.Markers
	trimmed := strings.TrimSpace(line)

	if m.TestStart != "" && strings.HasPrefix(trimmed, m.TestStart) {
		return []handlers.Handler{handlers.TestCaseStart{}}
	}
	if m.CompleteTestFileName != "" && strings.Contains(line, m.CompleteTestFileName) {
		return []handlers.Handler{handlers.CompleteFileName{}}
	}

	var chain []handlers.Handler
	if textutil.ContainsAny(trimmed, m.FillTriggers()...) {
		chain = append(chain, handlers.Fill{})
	}
	if last {
		chain = append(chain, handlers.LastLine{})
	}
	return append(chain, handlers.Default{})
}

// Run passes line through chain until a handler stops it. Text left over
// by a chain that never stopped is emitted as is.
func Run(ctx *handlers.Context, chain []handlers.Handler, line string) error {
	logger := logging.GetLogger("dispatcher")
	text := line
	for _, h := range chain {
		next, cont, err := h.Process(ctx, text)
		if err != nil {
			return errors.Wrapf(err, errors.ErrTransform, "handler %s failed", h.Name()).
				WithDetail("line", ctx.Index+1)
		}
		logger.Trace().
			Int("line", ctx.Index).
			Str("handler", h.Name()).
			Bool("continue", cont).
			Msg("Handler processed line")
		if !cont {
			return nil
		}
		text = next
	}
	ctx.Emit(text)
	return nil
}

// Dispatch builds and runs the chain for the context's current line.
func Dispatch(ctx *handlers.Context) error {
	line := ctx.Script[ctx.Index]
	return Run(ctx, Build(ctx.Rules, line, ctx.IsLast()), line)
}
