package catalog

import "strings"

// LabelTable translates free-text, inconsistently cased source labels to
// canonical activity IDs. A single table is shared by every normalizer so
// organic events and their approved-exception counterparts can never
// drift apart.
type LabelTable struct {
	byLabel map[string]string
}

func defaultAliases() map[string]string {
	return map[string]string{
		"kie":                     ActivityTepatWaktuKIE,
		"tepat waktu kie":         ActivityTepatWaktuKIE,
		"doa bersama":             ActivityDoaBersama,
		"doa pagi":                ActivityDoaBersama,
		"bbq":                     ActivityBBQ,
		"bimbingan baca quran":    ActivityBBQ,
		"umum":                    ActivityKajianUmum,
		"kajian umum":             ActivityKajianUmum,
		"kajian selasa":           ActivityKajianSelasa,
		"pengajian persyarikatan": ActivityPengajianPersyarikatan,
		"persyarikatan":           ActivityPengajianPersyarikatan,
		"apel pagi":               ActivityApelPagi,
		"apel":                    ActivityApelPagi,
		"tadarus":                 ActivityTadarus,
		"tadarus kelompok":        ActivityTadarus,
		"shalat berjamaah":        ActivityShalatBerjamaah,
	}
}

// NewLabelTable builds the shared lookup for a catalog. Activity IDs
// always resolve to themselves in addition to the alias rows.
func NewLabelTable(c *Catalog) *LabelTable {
	byLabel := make(map[string]string)
	for _, a := range c.Activities() {
		byLabel[NormalizeLabel(a.ID)] = a.ID
		byLabel[NormalizeLabel(a.Title)] = a.ID
	}
	for alias, id := range defaultAliases() {
		if _, ok := c.ByID(id); ok {
			byLabel[alias] = id
		}
	}
	return &LabelTable{byLabel: byLabel}
}

// Resolve maps a raw source label to an activity id. A miss is not an
// error; callers drop the record and tally it.
func (t *LabelTable) Resolve(label string) (string, bool) {
	id, ok := t.byLabel[NormalizeLabel(label)]
	return id, ok
}

// NormalizeLabel trims, collapses internal whitespace and folds case.
func NormalizeLabel(label string) string {
	return strings.ToLower(strings.Join(strings.Fields(label), " "))
}
