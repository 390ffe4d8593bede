package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Правила каталога
	RuleInfo                       Code = 1000
	RuleWildcardOrigin             Code = 1001
	RuleMissingConfig              Code = 1002
	RuleMissingConfigProperty      Code = 1003
	RuleEmptyInteractionAttributes Code = 1004
	RuleMissingClientID            Code = 1005
	RuleContactSearchUndefined     Code = 1006
	RuleContactSearchEmpty         Code = 1007
	RuleContactSearchNoOnSuccess   Code = 1008
	RuleCallLogUndefined           Code = 1009
	RuleCallLogEmpty               Code = 1010
	RuleCallLogNoOnSuccess         Code = 1011
	RuleExternalScript             Code = 1012

	// Парсер
	SynInfo        Code = 2000
	SynParseError  Code = 2001
	SynParserPanic Code = 2002

	// Ввод-вывод
	IOInfo          Code = 4000
	IOLoadFileError Code = 4001

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                    "Unknown error",
		RuleInfo:                       "Rule information",
		RuleWildcardOrigin:             "Wildcard postMessage target origin",
		RuleMissingConfig:              "Framework object without config",
		RuleMissingConfigProperty:      "Missing config property",
		RuleEmptyInteractionAttributes: "Empty customInteractionAttributes",
		RuleMissingClientID:            "Missing region client id",
		RuleContactSearchUndefined:     "contactSearch not defined",
		RuleContactSearchEmpty:         "contactSearch is empty",
		RuleContactSearchNoOnSuccess:   "contactSearch does not call onSuccess",
		RuleCallLogUndefined:           "processCallLog not defined",
		RuleCallLogEmpty:               "processCallLog is empty",
		RuleCallLogNoOnSuccess:         "processCallLog does not call onSuccess",
		RuleExternalScript:             "Possible external script",
		SynInfo:                        "Syntax information",
		SynParseError:                  "Syntax error",
		SynParserPanic:                 "Parser failure",
		IOInfo:                         "I/O information",
		IOLoadFileError:                "Failed to load file",
		ObsInfo:                        "Observability information",
		ObsTimings:                     "Timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("FWL%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
