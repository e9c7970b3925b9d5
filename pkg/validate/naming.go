package validate

import (
	"github.com/leapstack-labs/ecl/pkg/lint"
	"github.com/leapstack-labs/ecl/pkg/naming"
)

func checkNaming(r *run) {
	model := naming.Build(r.snap.AllProperties())
	if len(model.Rules) == 0 && len(model.Styles) == 0 {
		return
	}

	for _, rule := range model.UnknownStyles() {
		r.report(rule.StyleValue, lint.UnknownNamingStyle, rule.Style, rule.Style)
	}
	for _, rule := range model.UnknownSymbols() {
		r.report(rule.SymbolsValue, lint.UnknownNamingSymbols, rule.Symbols, rule.Symbols)
	}
	for _, style := range model.UnusedStyles() {
		r.report(style.Declaration, lint.UnusedNamingStyle, style.Name)
	}
	for _, re := range model.Reorderings() {
		r.report(re.Rule.Declaration, lint.NamingRuleReordered, re.Rule.Name, re.Other.Name, re.Other.Name)
	}
}
