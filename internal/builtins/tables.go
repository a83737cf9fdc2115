package builtins

import "strings"

func setOf(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}

// voidFunctions never return a usable value, whatever the corpus says.
var voidFunctions = setOf(
	"alert", "alertcondition",
	"bgcolor", "fill", "plotshape", "plotchar", "plotarrow",
	"line.delete", "label.delete", "box.delete", "table.delete", "polyline.delete", "linefill.delete",
	"line.set_x1", "line.set_x2", "line.set_y1", "line.set_y2", "line.set_xy1", "line.set_xy2",
	"line.set_color", "line.set_width", "line.set_style", "line.set_extend", "line.set_xloc",
	"line.set_first_point", "line.set_second_point",
	"label.set_x", "label.set_y", "label.set_xy", "label.set_text", "label.set_color",
	"label.set_textcolor", "label.set_style", "label.set_size", "label.set_textalign",
	"label.set_tooltip", "label.set_xloc", "label.set_yloc", "label.set_point",
	"box.set_top", "box.set_bottom", "box.set_left", "box.set_right",
	"box.set_lefttop", "box.set_rightbottom", "box.set_bgcolor", "box.set_border_color",
	"box.set_border_width", "box.set_border_style", "box.set_extend", "box.set_text",
	"box.set_text_color", "box.set_text_size", "box.set_text_halign", "box.set_text_valign",
	"table.clear", "table.set_frame_color", "table.set_frame_width",
	"table.set_border_color", "table.set_border_width", "table.set_bgcolor", "table.set_position",
	"table.cell", "table.cell_set_text", "table.cell_set_bgcolor", "table.cell_set_text_color",
	"table.cell_set_width", "table.cell_set_height", "table.cell_set_text_halign",
	"table.cell_set_text_valign", "table.cell_set_text_size", "table.cell_set_tooltip",
	"table.cell_set_text_font_family", "table.merge_cells",
	"array.clear", "array.fill", "array.insert", "array.push", "array.remove", "array.set",
	"array.unshift", "array.sort", "array.reverse",
	"matrix.add_row", "matrix.add_col", "matrix.remove_row", "matrix.remove_col",
	"matrix.set", "matrix.fill", "matrix.swap_rows", "matrix.swap_columns", "matrix.sort",
	"map.clear", "map.put", "map.remove",
	"strategy.entry", "strategy.exit", "strategy.order", "strategy.close", "strategy.close_all",
	"strategy.cancel", "strategy.cancel_all",
	"runtime.error", "log.info", "log.warning", "log.error",
	"max_bars_back",
)

// keywords are never treated as functions or references.
var keywords = setOf(
	"if", "else", "switch", "for", "while", "break", "continue", "return",
	"var", "varip", "type", "method", "export", "import", "library", "true", "false", "na",
)

// standardNamespaces are the roots of the built-in dotted names.
var standardNamespaces = setOf(
	"ta", "math", "request", "array", "matrix", "table", "line", "label", "box",
	"linefill", "polyline", "str", "time", "color", "runtime", "syminfo", "ticker",
	"barstate", "indicator", "strategy", "library", "input", "map", "chart",
	"format", "session", "alert", "timeframe", "dividends", "earnings", "hline", "plot", "display",
	"order", "scale", "adjustment", "backadjustment", "currency", "font",
	"extend", "location", "position", "shape", "size", "text", "xloc", "yloc",
	"splits", "barmerge", "settlement_as_close",
)

// namespaceSymbols are registered as `namespace` symbols before the core
// variables, so a name present in both lists stays a namespace.
var namespaceSymbols = []string{
	"ta", "math", "str", "request", "strategy", "array", "matrix", "map",
	"chart", "color", "input", "format", "syminfo", "barstate", "ticker",
	"session", "alert", "timeframe", "dividends", "earnings", "box", "label",
	"line", "table", "polyline", "linefill", "hline", "plot", "display",
	"order", "scale", "adjustment", "backadjustment", "currency", "font",
	"extend", "location", "position", "shape", "size", "text", "xloc", "yloc",
	"splits", "barmerge", "settlement_as_close",
}

// coreVariables are built-in types, variables and constants in registration order.
var coreVariables = []string{
	"int", "float", "bool", "string", "color", "label", "line", "linefill", "table", "box", "polyline", "chart.point",
	"na", "true", "false",
	"open", "high", "low", "close", "volume", "hl2", "hlc3", "ohlc4", "hlcc4", "time", "timenow", "bar_index", "last_bar_index",
	"high_yesterday", "low_yesterday", "close_yesterday", "open_yesterday",
	"barstate.isconfirmed", "barstate.ishistory", "barstate.islast", "barstate.islastconfirmedhistory", "barstate.isnew", "barstate.isrealtime",
	"chart.bg_color", "chart.fg_color", "chart.is_heikinashi", "chart.is_kagi", "chart.is_linebreak", "chart.is_pnf", "chart.is_range", "chart.is_renko", "chart.is_standard",
	"chart.left_visible_bar_index", "chart.right_visible_bar_index",
	"syminfo.basecurrency", "syminfo.currency", "syminfo.description", "syminfo.mintick", "syminfo.pointvalue", "syminfo.prefix", "syminfo.root", "syminfo.session", "syminfo.ticker", "syminfo.tickerid", "syminfo.timezone", "syminfo.type",
	"dayofmonth", "dayofweek", "month", "year", "hour", "minute", "second", "weekofyear",
	"ta.tr",
	"strategy.account_currency", "strategy.equity", "strategy.grossloss", "strategy.grossprofit", "strategy.initial_capital", "strategy.netprofit", "strategy.openprofit", "strategy.position_avg_price", "strategy.position_size",
	"format.mintick", "format.percent", "format.price", "format.volume", "format.inherit",
	"alert.freq_once_per_bar", "alert.freq_once_per_bar_close", "alert.freq_all",
	"extend.none", "extend.left", "extend.right", "extend.both",
	"line.style_solid", "line.style_dashed", "line.style_dotted", "line.style_arrow_left", "line.style_arrow_right", "line.style_arrow_both",
	"label.style_none", "label.style_xcross", "label.style_cross", "label.style_triangleup", "label.style_triangledown",
	"label.style_flag", "label.style_circle", "label.style_arrowup", "label.style_arrowdown", "label.style_label_up",
	"label.style_label_down", "label.style_label_left", "label.style_label_right", "label.style_label_center",
	"label.style_label_lower_left", "label.style_label_lower_right", "label.style_label_upper_left", "label.style_label_upper_right",
	"label.style_square", "label.style_diamond", "label.style_text_outline",
	"size.auto", "size.tiny", "size.small", "size.normal", "size.large", "size.huge",
	"position.top_left", "position.top_center", "position.top_right", "position.middle_left", "position.middle_center",
	"position.middle_right", "position.bottom_left", "position.bottom_center", "position.bottom_right",
	"shape.xcross", "shape.cross", "shape.triangleup", "shape.triangledown", "shape.flag", "shape.circle",
	"shape.arrowup", "shape.arrowdown", "shape.labelup", "shape.labeldown", "shape.square", "shape.diamond",
	"location.abovebar", "location.belowbar", "location.top", "location.bottom", "location.absolute",
	"text.align_left", "text.align_center", "text.align_right", "text.wrap_auto", "text.wrap_none", "text.format_bold", "text.format_italic", "text.format_none",
	"text.align_top", "text.align_bottom",
	"color.aqua", "color.black", "color.blue", "color.fuchsia", "color.gray", "color.green",
	"color.lime", "color.maroon", "color.navy", "color.olive", "color.orange", "color.purple",
	"color.red", "color.silver", "color.teal", "color.white", "color.yellow",
	"math.e", "math.phi", "math.pi", "math.rphi",
	"dayofweek.sunday", "dayofweek.monday", "dayofweek.tuesday", "dayofweek.wednesday",
	"dayofweek.thursday", "dayofweek.friday", "dayofweek.saturday",
	"strategy.long", "strategy.short", "strategy.cash", "strategy.fixed", "strategy.percent_of_equity",
	"barmerge.gaps_off", "barmerge.gaps_on", "barmerge.lookahead_off", "barmerge.lookahead_on",
	"hline.style_solid", "hline.style_dashed", "hline.style_dotted",
	"plot.style_line", "plot.style_linebr", "plot.style_stepline", "plot.style_stepline_diamond",
	"plot.style_steplinebr", "plot.style_area", "plot.style_areabr", "plot.style_columns",
	"plot.style_histogram", "plot.style_circles", "plot.style_cross",
	"display.all", "display.none", "display.pane", "display.data_window", "display.price_scale", "display.status_line",
	"order.ascending", "order.descending",
	"session.regular", "session.extended",
	"xloc.bar_index", "xloc.bar_time",
	"yloc.price", "yloc.abovebar", "yloc.belowbar",
	"timeframe.period", "timeframe.multiplier", "timeframe.isintraday", "timeframe.isdaily", "timeframe.isweekly", "timeframe.ismonthly", "timeframe.isdwm",
	"adjustment.none", "adjustment.splits", "adjustment.dividends",
	"currency.USD", "currency.EUR", "currency.GBP", "currency.JPY", "currency.AUD", "currency.CAD", "currency.CHF", "currency.CNY", "currency.HKD", "currency.NZD", "currency.SEK", "currency.SGD", "currency.KRW", "currency.INR", "currency.RUB", "currency.TRY", "currency.ZAR", "currency.BRL", "currency.MXN", "currency.PLN", "currency.TKL", "currency.XAU", "currency.XAG", "currency.NONE",
	"font.family_default", "font.family_monospace",
	"scale.left", "scale.right", "scale.none",
}

var coreVariableSet = setOf(coreVariables...)

// prefixTypes maps a dotted prefix to the tag type of the constant family.
var prefixTypes = []struct {
	prefix, typ string
}{
	{"color.", "color"},
	{"hline.style_", "hline_style"},
	{"line.style_", "line_style"},
	{"plot.style_", "plot_style"},
	{"display.", "plot_display"},
	{"size.", "size"},
	{"position.", "position"},
	{"shape.", "shape"},
	{"location.", "location"},
	{"text.align_", "text_align"},
	{"text.wrap_", "text_align"},
	{"text.format_", "text_align"},
	{"xloc.", "xloc"},
	{"yloc.", "yloc"},
	{"extend.", "extend"},
	{"barmerge.gaps_", "barmerge_gaps"},
	{"barmerge.lookahead_", "barmerge_lookahead"},
	{"label.style_", "label_style"},
	{"format.", "format"},
	{"alert.freq_", "alert_freq"},
	{"adjustment.", "adjustment"},
	{"currency.", "currency"},
	{"font.", "font"},
	{"scale.", "scale"},
	{"order.", "order"},
	{"session.", "session"},
	{"timeframe.is", "series bool"},
}

var seriesInt = setOf(
	"bar_index", "last_bar_index", "time", "timenow", "year", "month",
	"dayofmonth", "dayofweek", "hour", "minute", "second", "weekofyear",
)

var strategyDirections = setOf("long", "short", "cash", "fixed", "percent_of_equity")

var priceSeries = setOf("open", "high", "low", "close", "volume", "hl2", "hlc3", "ohlc4", "hlcc4")

// IsVoid reports whether name is a known void function.
func IsVoid(name string) bool {
	_, ok := voidFunctions[name]
	return ok
}

// IsKeyword reports whether name is a reserved word.
func IsKeyword(name string) bool {
	_, ok := keywords[name]
	return ok
}

// IsStandardNamespace reports whether name is a built-in namespace root.
func IsStandardNamespace(name string) bool {
	_, ok := standardNamespaces[name]
	return ok
}

// IsCoreVariable reports whether name is a built-in variable, constant or type name.
func IsCoreVariable(name string) bool {
	_, ok := coreVariableSet[name]
	return ok
}

// NamespaceSymbols returns the names registered as namespace symbols.
func NamespaceSymbols() []string {
	return namespaceSymbols
}

// CoreVariables returns the built-in variables in registration order.
func CoreVariables() []string {
	return coreVariables
}

// CoreVariableType returns the declared type of a built-in variable or constant.
func CoreVariableType(name string) string {
	for _, p := range prefixTypes {
		if strings.HasPrefix(name, p.prefix) {
			return p.typ
		}
	}
	if name == "timeframe.period" || name == "timeframe.multiplier" {
		return "series string"
	}
	if rest, ok := strings.CutPrefix(name, "strategy."); ok {
		if _, dir := strategyDirections[rest]; dir {
			return "strategy_direction"
		}
		return "float"
	}
	switch name {
	case "true", "false":
		return "bool"
	case "na":
		return "any"
	}
	if strings.HasPrefix(name, "barstate.") {
		return "series bool"
	}
	if _, ok := seriesInt[name]; ok {
		return "series int"
	}
	return "series float"
}

// ValueType returns the type an expression naming a built-in evaluates to.
// It differs from CoreVariableType for a handful of frequently used names.
func ValueType(name string) (string, bool) {
	if !IsCoreVariable(name) {
		return "", false
	}
	if _, ok := priceSeries[name]; ok {
		return "float", true
	}
	switch name {
	case "time":
		return "series int", true
	case "bar_index", "last_bar_index":
		return "int", true
	case "true", "false":
		return "bool", true
	case "na":
		return "any", true
	}
	if strings.HasPrefix(name, "barstate.") {
		return "bool", true
	}
	return "", false
}
