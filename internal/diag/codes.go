package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1004
	LexBadColor           Code = 1006

	// Парсерные
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnclosedParen    Code = 2006
	SynUnclosedBracket  Code = 2008
	SynForBadHeader     Code = 2014
	SynTypeExpectBody   Code = 2019
	SynExpectExpression Code = 2031
	SynExpectBlock      Code = 2032
	SynBadParameter     Code = 2033
	SynExpectIdentifier Code = 2102
	SynBadLibraryPath   Code = 2103
	SynExpectIdentAfter Code = 2105

	// Семантические
	SemaInfo                 Code = 3000
	SemaConditionType        Code = 3001
	SemaAssignToCall         Code = 3002
	SemaAssignToConstructor  Code = 3003
	SemaAssignToNamespace    Code = 3004
	SemaAssignToLiteral      Code = 3005
	SemaTypeMismatch         Code = 3006
	SemaUndefinedIdent       Code = 3007
	SemaUndefinedStdFunction Code = 3008
	SemaNamespaceAsFunction  Code = 3009
	SemaVariableAsFunction   Code = 3010
	SemaUndefinedFunction    Code = 3011
	SemaVoidAssign           Code = 3012
	SemaVoidValue            Code = 3013
	SemaTooManyArgs          Code = 3014
	SemaMissingArgs          Code = 3015
	SemaArgTypeMismatch      Code = 3016
	SemaUnusedVariable       Code = 3017

	// Ввод-вывод
	IOLoadFileError Code = 4001

	// Проект
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:              "Unknown error",
	LexInfo:                  "Lexical information",
	LexUnknownChar:           "Unknown character",
	LexUnterminatedString:    "Unterminated string literal",
	LexBadNumber:             "Malformed number literal",
	LexBadColor:              "Malformed color literal",
	SynInfo:                  "Syntax information",
	SynUnexpectedToken:       "Unexpected token",
	SynUnclosedParen:         "Unclosed parenthesis",
	SynUnclosedBracket:       "Unclosed bracket",
	SynForBadHeader:          "Malformed for loop header",
	SynTypeExpectBody:        "Type definition requires an indented field block",
	SynExpectExpression:      "Expected expression",
	SynExpectBlock:           "Expected an indented block",
	SynBadParameter:          "Malformed parameter",
	SynExpectIdentifier:      "Expected identifier",
	SynBadLibraryPath:        "Malformed library path",
	SynExpectIdentAfter:      "Expected identifier after keyword",
	SemaInfo:                 "Semantic information",
	SemaConditionType:        "Condition has wrong type",
	SemaAssignToCall:         "Assignment to a function call",
	SemaAssignToConstructor:  "Assignment to a constructor",
	SemaAssignToNamespace:    "Assignment to a standard namespace",
	SemaAssignToLiteral:      "Assignment to a literal",
	SemaTypeMismatch:         "Type mismatch",
	SemaUndefinedIdent:       "Undefined identifier",
	SemaUndefinedStdFunction: "Undefined function in standard library",
	SemaNamespaceAsFunction:  "Namespace used as a function",
	SemaVariableAsFunction:   "Variable used as a function",
	SemaUndefinedFunction:    "Undefined function",
	SemaVoidAssign:           "Void result assigned",
	SemaVoidValue:            "Void result used as a value",
	SemaTooManyArgs:          "Too many arguments",
	SemaMissingArgs:          "Missing required arguments",
	SemaArgTypeMismatch:      "Argument type mismatch",
	SemaUnusedVariable:       "Unused variable",
	IOLoadFileError:          "I/O error",
	ProjInfo:                 "Project information",
	ProjManifestInvalid:      "Invalid project manifest",
	ObsInfo:                  "Observability information",
	ObsTimings:               "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
