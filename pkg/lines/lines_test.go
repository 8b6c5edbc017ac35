package lines_test

import (
	"testing"

	"github.com/arthur-debert/pwtransformer/pkg/lines"
	"github.com/arthur-debert/pwtransformer/pkg/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compileInsert(t *testing.T, raw ...rules.InsertLines) []rules.InsertRule {
	t.Helper()
	rs, err := rules.Compile(rules.Sources{Insert: raw}, rules.Options{}, rules.Boilerplate{})
	require.NoError(t, err)
	return rs.Insert
}

func strPtr(s string) *string { return &s }

func TestInsertEngine_StringWindow(t *testing.T) {
	ins := compileInsert(t, rules.InsertLines{
		ExistingLines:     "GETBYTESTID('menu').click()|getByTestId('open')",
		LinesToBeInserted: "await page.waitForTimeout(500);|// opened __GET_BY_TEST_ID__1__",
		InsertAt:          "1,2",
		Separator:         strPtr(`\|`),
	})

	script := []string{
		"await page.goto('/');",
		"  await page.getByTestId('menu').click();",
		"  await page.getByTestId('open').click();",
		"await page.close();",
	}

	got := lines.NewInsertEngine(ins).Apply(script)
	assert.Equal(t, []string{
		"await page.goto('/');",
		"  await page.getByTestId('menu').click();",
		"await page.waitForTimeout(500);",
		"  await page.getByTestId('open').click();",
		"// opened open",
		"await page.close();",
	}, got)
}

func TestInsertEngine_RemoveLines(t *testing.T) {
	ins := compileInsert(t, rules.InsertLines{
		ExistingLines:     "first,second",
		LinesToBeInserted: "replacement",
		InsertAt:          "0",
		RemoveLines:       "0,1",
	})

	got := lines.NewInsertEngine(ins).Apply([]string{"first", "second", "third"})
	assert.Equal(t, []string{"replacement", "third"}, got)
}

func TestInsertEngine_RegexGroups(t *testing.T) {
	ins := compileInsert(t, rules.InsertLines{
		ExistingLines:     `getByRole\('(\w+)', \{ name: '([^']+)' \}\)`,
		LinesToBeInserted: "// __LINE__0__GROUP__1__ named __LINE__0__GROUP__2__ (__LINE__0__GROUP__2__)",
		InsertAt:          "0",
		Separator:         strPtr("|"),
		IsRegex:           true,
	})

	got := lines.NewInsertEngine(ins).Apply([]string{
		"await page.getByRole('button', { name: 'Save' }).click();",
	})
	require.Len(t, got, 2)
	assert.Equal(t, "// button named Save (Save)", got[0])
}

func TestInsertEngine_WindowPastEnd(t *testing.T) {
	ins := compileInsert(t, rules.InsertLines{
		ExistingLines:     "a,b",
		LinesToBeInserted: "x",
		InsertAt:          "0",
	})
	script := []string{"z", "a"}
	assert.Equal(t, script, lines.NewInsertEngine(ins).Apply(script))
}

func TestInsertEngine_EgIDCounter(t *testing.T) {
	ins := compileInsert(t, rules.InsertLines{
		ExistingLines:     "grid",
		LinesToBeInserted: "const row__%EG_ID%__ = page.locator('row');|await row__%EG_ID%__.click();",
		InsertAt:          "0,1",
		RemoveLines:       "0",
		Separator:         strPtr("|"),
	})

	got := lines.NewInsertEngine(ins).Apply([]string{"grid", "grid", "grid"})
	assert.Equal(t, []string{
		"const row = page.locator('row');",
		"await row.click();",
		"const row2 = page.locator('row');",
		"await row2.click();",
		"const row3 = page.locator('row');",
		"await row3.click();",
	}, got)

	// A new engine starts numbering again.
	again := lines.NewInsertEngine(ins).Apply([]string{"grid"})
	assert.Equal(t, "const row = page.locator('row');", again[0])
}

func TestInsertEngine_FirstRuleWins(t *testing.T) {
	ins := compileInsert(t,
		rules.InsertLines{ExistingLines: "click", LinesToBeInserted: "first", InsertAt: "0"},
		rules.InsertLines{ExistingLines: "click", LinesToBeInserted: "second", InsertAt: "0"},
	)
	got := lines.NewInsertEngine(ins).Apply([]string{"x.click()"})
	assert.Equal(t, []string{"first", "x.click()"}, got)
}

func doubleLineSkip(pattern string, compare bool) []rules.SkipRule {
	return []rules.SkipRule{{Pattern: pattern, Scope: rules.ScopeDoubleLine, CompareTextBeforePattern: compare}}
}

func TestRemoveNoise_DoubleLine(t *testing.T) {
	script := []string{
		"await page.goto('/');",
		"await page.getByTestId('test').click();",
		"await page.getByTestId('test').click();",
		"});",
	}
	got := lines.RemoveNoise(script, doubleLineSkip("getByTestId('test').click();", false), 10)
	assert.Equal(t, []string{
		"await page.goto('/');",
		"await page.getByTestId('test').click();",
		"});",
	}, got)
}

func TestRemoveNoise_ConvergesLongRuns(t *testing.T) {
	script := []string{
		"start",
		"  await page.waitForLoadState();",
		"await page.waitForLoadState();",
		"await page.waitForLoadState();",
		"await page.waitForLoadState();",
		"end",
	}
	got := lines.RemoveNoise(script, doubleLineSkip("waitForLoadState", false), 10)
	assert.Equal(t, []string{"start", "await page.waitForLoadState();", "end"}, got)
}

func TestRemoveNoise_CompareTextBeforePattern(t *testing.T) {
	skip := doubleLineSkip(".click();", true)
	script := []string{
		"await page.getByText('A').click();",
		"await page.getByText('B').click();",
		"AWAIT PAGE.getByText('B').click();",
		"await page.getByText('b').click();",
		"done",
	}
	got := lines.RemoveNoise(script, skip, 10)
	assert.Equal(t, []string{
		"await page.getByText('A').click();",
		"await page.getByText('b').click();",
		"done",
	}, got)
}

func TestRemoveNoise_SingleLineRulesIgnored(t *testing.T) {
	skip := []rules.SkipRule{{Pattern: "x", Scope: rules.ScopeSingleLine}}
	script := []string{"x", "x", "end"}
	assert.Equal(t, script, lines.RemoveNoise(script, skip, 10))
}

func TestRemoveNoise_TrailingBlanks(t *testing.T) {
	script := []string{"a", "", "b", "c", "", "d", "", ""}
	got := lines.RemoveNoise(script, nil, 10)
	assert.Equal(t, []string{"a", "", "b", "c", "d"}, got)
}

func TestRemoveNoise_Idempotent(t *testing.T) {
	skip := append(doubleLineSkip("getByTestId('test').click();", false),
		doubleLineSkip(".click();", true)...)
	inputs := [][]string{
		{
			"test('flow', async ({ page }) => {",
			"await page.getByTestId('test').click();",
			"await page.getByTestId('test').click();",
			"await page.getByTestId('test').click();",
			"await page.getByRole('link').click();",
			"await page.getByRole('link').click();",
			"await page.fill('#a', 'x');",
			"});",
			"",
		},
		{"only"},
		{},
	}
	for _, in := range inputs {
		once := lines.RemoveNoise(in, skip, 10)
		twice := lines.RemoveNoise(once, skip, 10)
		assert.Equal(t, once, twice)
	}
}

func TestCollapseBlankLines(t *testing.T) {
	got := lines.CollapseBlankLines([]string{"a", "", "  ", "", "b", "", "c", " "})
	assert.Equal(t, []string{"a", "", "b", "", "c", " "}, got)
}
