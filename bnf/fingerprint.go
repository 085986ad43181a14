package bnf

import (
	"fmt"

	"github.com/cnf/structhash"
)

// Expressions link back to their parents, so we cannot hash them directly.
// Instead we hash a flat digest of every rule.

type ruleDigest struct {
	Name      string
	Modifiers []string
	Body      string
	Attrs     []string
}

type grammarDigest struct {
	Name   string
	Header []string
	Rules  []ruleDigest
}

// Fingerprint returns a hash over the names, modifiers, bodies and attributes
// of all rules. Equal fingerprints indicate structurally equal grammars.
func (g *Grammar) Fingerprint() (string, error) {
	d := grammarDigest{Name: g.name}
	for _, a := range g.header {
		d.Header = append(d.Header, a.key()+"="+a.Raw)
	}
	for _, r := range g.rules {
		rd := ruleDigest{
			Name:      r.name,
			Modifiers: r.Modifiers(),
			Body:      r.body.text,
		}
		for _, a := range r.attrs {
			rd.Attrs = append(rd.Attrs, a.key()+"="+a.Raw)
		}
		d.Rules = append(d.Rules, rd)
	}
	h, err := structhash.Hash(d, 1)
	if err != nil {
		return "", fmt.Errorf("cannot fingerprint grammar %s: %w", g.name, err)
	}
	return h, nil
}
