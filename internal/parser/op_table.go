package parser

import (
	"pinecheck/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет. Тернарный ?: разбирается отдельно и ниже всех.
const (
	precLogical        = 1 // and or (один уровень, левоассоциативно)
	precRelational     = 2 // == != < <= > >=
	precAdditive       = 3 // + -
	precMultiplicative = 4 // * / %
)

// binaryPrec возвращает приоритет бинарного оператора или -1
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.KwAnd, token.KwOr:
		return precLogical
	case token.EqEq, token.BangEq, token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precRelational
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return -1 // не бинарный оператор
	}
}

// isUnaryOp - префиксные операторы
func isUnaryOp(kind token.Kind) bool {
	return kind == token.KwNot || kind == token.Minus || kind == token.Plus
}
