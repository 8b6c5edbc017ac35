package rules

// FillPattern is one entry of the fill patterns file.
type FillPattern struct {
	Regex                        string `json:"regex" yaml:"regex" toml:"regex"`
	GroupNoForKey                Int    `json:"groupNoForKey" yaml:"groupNoForKey" toml:"groupNoForKey"`
	GroupNoForValue              Int    `json:"groupNoForValue" yaml:"groupNoForValue" toml:"groupNoForValue"`
	KeysToBeTreatedAsConstants   string `json:"keysToBeTreatedAsConstants" yaml:"keysToBeTreatedAsConstants" toml:"keysToBeTreatedAsConstants"`
	NonUniqueKeys                string `json:"nonUniqueKeys" yaml:"nonUniqueKeys" toml:"nonUniqueKeys"`
	IsKeyFrameset                Flag   `json:"isKeyFrameset" yaml:"isKeyFrameset" toml:"isKeyFrameset"`
	IsContentFrameHandlingNeeded Flag   `json:"isContentFrameHandlingNeeded" yaml:"isContentFrameHandlingNeeded" toml:"isContentFrameHandlingNeeded"`
	IgnorePathInValue            Flag   `json:"ignorePathInValue" yaml:"ignorePathInValue" toml:"ignorePathInValue"`
	IsFileUpload                 Flag   `json:"isFileUpload" yaml:"isFileUpload" toml:"isFileUpload"`
	IsMultipleFileUpload         Flag   `json:"isMultipleFileUpload" yaml:"isMultipleFileUpload" toml:"isMultipleFileUpload"`
	KeyToUse                     string `json:"keyToUse" yaml:"keyToUse" toml:"keyToUse"`
	IsDelay                      Flag   `json:"isDelay" yaml:"isDelay" toml:"isDelay"`
	KeysForLocatorInFileUpload   string `json:"keysForLocatorInFileUpload" yaml:"keysForLocatorInFileUpload" toml:"keysForLocatorInFileUpload"`
}

// ReplaceText is one entry of the replace texts file.
type ReplaceText struct {
	DataPrependedBy                              string `json:"dataPrependedBy" yaml:"dataPrependedBy" toml:"dataPrependedBy"`
	DataAppendedBy                               string `json:"dataAppendedBy" yaml:"dataAppendedBy" toml:"dataAppendedBy"`
	KeysToBeTreatedAsConstants                   string `json:"keysToBeTreatedAsConstants" yaml:"keysToBeTreatedAsConstants" toml:"keysToBeTreatedAsConstants"`
	KeysAsNewPageLaunchers                       string `json:"keysAsNewPageLaunchers" yaml:"keysAsNewPageLaunchers" toml:"keysAsNewPageLaunchers"`
	MatchTextForNonUniqueness                    string `json:"matchTextForNonUniqueness" yaml:"matchTextForNonUniqueness" toml:"matchTextForNonUniqueness"`
	ValuesToBeIgnored                            string `json:"valuesToBeIgnored" yaml:"valuesToBeIgnored" toml:"valuesToBeIgnored"`
	ReplaceWithDynamicIds                        Flag   `json:"replaceWithDynamicIds" yaml:"replaceWithDynamicIds" toml:"replaceWithDynamicIds"`
	IsWholeWordMatch                             Flag   `json:"isWholeWordMatch" yaml:"isWholeWordMatch" toml:"isWholeWordMatch"`
	KeysWithContainTextOrToHaveValueAsDynamicIds string `json:"keysWithContainTextOrToHaveValueAsDynamicIds" yaml:"keysWithContainTextOrToHaveValueAsDynamicIds" toml:"keysWithContainTextOrToHaveValueAsDynamicIds"`
	PreferredFieldForMatchingText                string `json:"preferredFieldForMatchingText" yaml:"preferredFieldForMatchingText" toml:"preferredFieldForMatchingText"`
	MatchTextToUsePreferredField                 string `json:"matchTextToUsePreferredField" yaml:"matchTextToUsePreferredField" toml:"matchTextToUsePreferredField"`
	RemoveDateAtTheEnd                           Flag   `json:"removeDateAtTheEnd" yaml:"removeDateAtTheEnd" toml:"removeDateAtTheEnd"`
	IsRegex                                      Flag   `json:"isRegex" yaml:"isRegex" toml:"isRegex"`
}

// SkipPattern is one entry of the skip patterns file.
type SkipPattern struct {
	Pattern                  string `json:"pattern" yaml:"pattern" toml:"pattern"`
	PatternScope             string `json:"patternScope" yaml:"patternScope" toml:"patternScope"`
	CompareTextBeforePattern Flag   `json:"compareTextBeforePattern" yaml:"compareTextBeforePattern" toml:"compareTextBeforePattern"`
}

// InsertLines is one entry of the insert lines file. Multi-line fields are
// joined with Separator (default ",").
type InsertLines struct {
	ExistingLines     string  `json:"existingLines" yaml:"existingLines" toml:"existingLines"`
	LinesToBeInserted string  `json:"linesToBeInserted" yaml:"linesToBeInserted" toml:"linesToBeInserted"`
	InsertAt          string  `json:"insertAt" yaml:"insertAt" toml:"insertAt"`
	RemoveLines       string  `json:"removeLines" yaml:"removeLines" toml:"removeLines"`
	Separator         *string `json:"separator" yaml:"separator" toml:"separator"`
	IsRegex           Flag    `json:"isRegex" yaml:"isRegex" toml:"isRegex"`
}

// PreProcessor is one entry of the optional pre-processor file.
type PreProcessor struct {
	TestScriptName    string `json:"testScriptName" yaml:"testScriptName" toml:"testScriptName"`
	LinesToBeInserted string `json:"linesToBeInserted" yaml:"linesToBeInserted" toml:"linesToBeInserted"`
	Separator         string `json:"separator" yaml:"separator" toml:"separator"`
}

// Sources groups the raw rule lists read from disk.
type Sources struct {
	Fill          []FillPattern
	Replace       []ReplaceText
	Skip          []SkipPattern
	Insert        []InsertLines
	PreProcessors []PreProcessor
}
