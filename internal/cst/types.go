package cst

// Node type tags.
const (
	SourceFile          = "source_file"
	VersionDirective    = "version_directive"
	ImportStatement     = "import_statement"
	LibraryPath         = "library_path"
	VariableDeclaration = "variable_declaration"
	SimpleDeclaration   = "simple_declaration"
	Assignment          = "assignment"
	CompoundAssignment  = "compound_assignment"
	FunctionDefinition  = "function_definition"
	MethodDefinition    = "method_definition"
	ParameterList       = "parameter_list"
	Parameter           = "parameter"
	TypeDefinition      = "type_definition"
	FieldDefinition     = "field_definition"
	IfStatement         = "if_statement"
	ForStatement        = "for_statement"
	ForInStatement      = "for_in_statement"
	WhileStatement      = "while_statement"
	SwitchExpression    = "switch_expression"
	SwitchCase          = "switch_case"
	BreakStatement      = "break_statement"
	ContinueStatement   = "continue_statement"
	ReturnStatement     = "return_statement"
	ExpressionStatement = "expression_statement"
	Block               = "block"

	Identifier              = "identifier"
	Number                  = "number"
	String                  = "string"
	BoolLiteral             = "bool_literal"
	NaLiteral               = "na_literal"
	ColorLiteral            = "color_literal"
	BinaryExpression        = "binary_expression"
	UnaryExpression         = "unary_expression"
	ConditionalExpression   = "conditional_expression"
	IfExpression            = "if_expression"
	HistoryReference        = "history_reference"
	MemberAccess            = "member_access"
	FunctionCall            = "function_call"
	TypeArguments           = "type_arguments"
	ArgumentList            = "argument_list"
	Argument                = "argument"
	ParenthesizedExpression = "parenthesized_expression"
	TupleExpression         = "tuple_expression"
	TupleDeclaration        = "tuple_declaration"
	AnonymousFunction       = "anonymous_function"
	TypeAnnotation          = "type"
	Modifier                = "modifier"
	Error                   = "error"
)

// Field names.
const (
	FieldVersion       = "version"
	FieldLibrary       = "library"
	FieldAlias         = "alias"
	FieldModifier      = "modifier"
	FieldType          = "type"
	FieldName          = "name"
	FieldValue         = "value"
	FieldOperator      = "operator"
	FieldExport        = "export"
	FieldParameters    = "parameters"
	FieldBody          = "body"
	FieldDefault       = "default"
	FieldCondition     = "condition"
	FieldConsequence   = "consequence"
	FieldAlternative   = "alternative"
	FieldVariable      = "variable"
	FieldStart         = "start"
	FieldEnd           = "end"
	FieldStep          = "step"
	FieldCollection    = "collection"
	FieldLeft          = "left"
	FieldRight         = "right"
	FieldArgument      = "argument"
	FieldIndex         = "index"
	FieldObject        = "object"
	FieldMember        = "member"
	FieldFunction      = "function"
	FieldTypeArguments = "type_arguments"
	FieldArguments     = "arguments"
)

// IsDeclaration reports whether t introduces or rebinds a variable.
func IsDeclaration(t string) bool {
	switch t {
	case VariableDeclaration, SimpleDeclaration, Assignment, CompoundAssignment:
		return true
	}
	return false
}

// IsDefinition reports whether t is a function or method definition.
func IsDefinition(t string) bool {
	return t == FunctionDefinition || t == MethodDefinition
}
