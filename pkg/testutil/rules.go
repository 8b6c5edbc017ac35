package testutil

import (
	"testing"

	"github.com/arthur-debert/pwtransformer/pkg/rules"
	"github.com/stretchr/testify/require"
)

// Markers returns the delimiter set used by recorded Playwright scripts.
func Markers() rules.Markers {
	return rules.Markers{
		TestStart:                 "test(",
		TestCaseNameMatcher:       "__TEST_CASE_NAME__",
		CompleteTestFileName:      "__COMPLETE_TEST_FILE_NAME__",
		DataSourcePathPlaceholder: "__DATA_SOURCE_PATH__",
		Fill:                      ".fill('",
		ClickMethod:               ".click();",
		ContentFrame:              ".contentFrame()",
		ToContainText:             ".toContainText('",
		ToHaveValue:               ".toHaveValue('",
		SetInputFiles:             ".setInputFiles('",
		SetMultipleInputFiles:     ".setInputFiles([",
		ExpectTextWithParam:       "expect(",
		S3UtilsInit:               "const s3Utils = new S3Utils();",
		SelectOption:              ".selectOption('",
		PressSequentially:         ".pressSequentially('",
		SendMail:                  "sendMail('",
		GetByTestID:               ".getByTestId('",
		CKEditorStart:             "// ckeditor start",
		CopyPasteInContentSource:  "copyPasteInContentSource('",
	}
}

// Upload returns the file upload statement templates.
func Upload() rules.Upload {
	return rules.Upload{
		SingleFilePath:   "const filePath = path.join(__dirname, EXTERNALIZED_DATA);",
		SingleFileInput:  "await page.setInputFiles('input[type=file]', filePath);",
		MultiFilePath:    "const filePath = EXTERNALIZED_DATA.split(',').map((f) => path.join(__dirname, f));",
		MultiFileInput:   "await page.setInputFiles('input[type=file]', filePath);",
		ExternalizedData: "EXTERNALIZED_DATA",
	}
}

// Boilerplate returns small header, wrapper and footer resources.
func Boilerplate() rules.Boilerplate {
	return rules.Boilerplate{
		Prepend: []string{
			"import { test } from '@playwright/test';",
			"import data from '__DATA_SOURCE_PATH__/__COMPLETE_TEST_FILE_NAME__.json';",
		},
		TestStart: []string{
			"test('__TEST_CASE_NAME__', async ({ page }) => {",
			"  const uniqueIndex = Date.now();",
			"  const s3Utils = new S3Utils();",
		},
		OpenPortal: []string{
			"  const page1 = await page1Promise;",
		},
		TestEnd: []string{
			"});",
		},
	}
}

// RuleSet compiles src with the default markers, upload templates and
// boilerplate.
func RuleSet(t *testing.T, src rules.Sources) *rules.RuleSet {
	t.Helper()
	rs, err := rules.Compile(src, rules.Options{Markers: Markers(), Upload: Upload()}, Boilerplate())
	require.NoError(t, err)
	return rs
}

// GetByTestIDFill captures the test id as key and the filled text as value.
func GetByTestIDFill() rules.FillPattern {
	return rules.FillPattern{
		Regex:           `getByTestId\('([^']+)'\)\.fill\('([^']*)'\)`,
		GroupNoForKey:   1,
		GroupNoForValue: 2,
	}
}

// GetByTextReplace rewrites literals inside getByText('...').
func GetByTextReplace() rules.ReplaceText {
	return rules.ReplaceText{
		DataPrependedBy: "getByText('",
		DataAppendedBy:  "')",
	}
}
