// Package catalog holds the static activity table and the shared label
// lookup every normalizer resolves source vocabularies against.
package catalog

import (
	"sort"

	"github.com/sehatmu/amalan/internal/catalog/domain"
)

// Activity IDs referenced across the engine.
const (
	ActivityShalatBerjamaah        = "shalat_berjamaah"
	ActivityApelPagi               = "apel_pagi"
	ActivityDoaBersama             = "doa_bersama"
	ActivityTepatWaktuKIE          = "tepat_waktu_kie"
	ActivityBBQ                    = "bbq"
	ActivityKajianSelasa           = "kajian_selasa"
	ActivityKajianUmum             = "kajian_umum"
	ActivityPengajianPersyarikatan = "pengajian_persyarikatan"
	ActivityTadarus                = "tadarus"
	ActivityMembacaBuku            = "membaca_buku"
	ActivityInfaqRutin             = "infaq_rutin"
	ActivityAmanahKerja            = "amanah_kerja"
	ActivitySalamSapa              = "salam_sapa"
)

func defaultActivities() []domain.ActivityDefinition {
	return []domain.ActivityDefinition{
		{ID: ActivityInfaqRutin, Title: "Infaq Rutin", Category: domain.CategoryIntegrity, MonthlyTarget: 1, SourceKind: domain.SourceManualCounter},
		{ID: ActivityAmanahKerja, Title: "Amanah dalam Bekerja", Category: domain.CategoryIntegrity, MonthlyTarget: 4, SourceKind: domain.SourceManualCounter},
		{ID: ActivitySalamSapa, Title: "Senyum Salam Sapa", Category: domain.CategoryTeamwork, MonthlyTarget: 4, SourceKind: domain.SourceManualCounter},
		{ID: ActivityDoaBersama, Title: "Doa Bersama", Category: domain.CategoryTeamwork, MonthlyTarget: 4, SourceKind: domain.SourceGroupSession},
		{ID: ActivityTepatWaktuKIE, Title: "Tepat Waktu KIE", Category: domain.CategoryTeamwork, MonthlyTarget: 4, SourceKind: domain.SourceGroupSession},
		{ID: ActivityShalatBerjamaah, Title: "Shalat Fardhu Berjamaah", Category: domain.CategoryDiscipline, MonthlyTarget: 20, SourceKind: domain.SourcePrayerLog},
		{ID: ActivityApelPagi, Title: "Apel Pagi", Category: domain.CategoryDiscipline, MonthlyTarget: 4, SourceKind: domain.SourceScheduledActivity},
		{ID: ActivityBBQ, Title: "Bimbingan Baca Qur'an", Category: domain.CategoryLearning, MonthlyTarget: 4, SourceKind: domain.SourceGroupSession},
		{ID: ActivityKajianSelasa, Title: "Kajian Selasa", Category: domain.CategoryLearning, MonthlyTarget: 4, SourceKind: domain.SourceScheduledActivity},
		{ID: ActivityKajianUmum, Title: "Kajian Umum", Category: domain.CategoryLearning, MonthlyTarget: 2, SourceKind: domain.SourceScheduledActivity},
		{ID: ActivityPengajianPersyarikatan, Title: "Pengajian Persyarikatan", Category: domain.CategoryLearning, MonthlyTarget: 1, SourceKind: domain.SourceScheduledActivity},
		{ID: ActivityTadarus, Title: "Tadarus Kelompok", Category: domain.CategoryLearning, MonthlyTarget: 8, SourceKind: domain.SourceGroupReading},
		{ID: ActivityMembacaBuku, Title: "Membaca Buku", Category: domain.CategoryLearning, MonthlyTarget: 1, SourceKind: domain.SourceReadingLog},
	}
}

// Catalog is an immutable view over the activity table. Build a new one
// through New or WithTargets instead of mutating.
type Catalog struct {
	ordered []domain.ActivityDefinition
	byID    map[string]domain.ActivityDefinition
}

// Default returns the compiled-in catalog.
func Default() *Catalog {
	c, _ := New(defaultActivities())
	return c
}

// New builds a catalog from explicit definitions.
func New(activities []domain.ActivityDefinition) (*Catalog, error) {
	byID := make(map[string]domain.ActivityDefinition, len(activities))
	ordered := make([]domain.ActivityDefinition, 0, len(activities))
	for _, a := range activities {
		if a.MonthlyTarget < 0 {
			return nil, domain.ErrInvalidTarget
		}
		if _, dup := byID[a.ID]; dup {
			continue
		}
		byID[a.ID] = a
		ordered = append(ordered, a)
	}
	return &Catalog{ordered: ordered, byID: byID}, nil
}

// WithTargets returns a copy of the catalog with monthly targets
// replaced for the listed activity IDs.
func (c *Catalog) WithTargets(targets map[string]int) (*Catalog, error) {
	for id, target := range targets {
		if _, ok := c.byID[id]; !ok {
			return nil, domain.ErrUnknownActivity
		}
		if target < 0 {
			return nil, domain.ErrInvalidTarget
		}
	}
	next := make([]domain.ActivityDefinition, len(c.ordered))
	copy(next, c.ordered)
	for i := range next {
		if target, ok := targets[next[i].ID]; ok {
			next[i].MonthlyTarget = target
		}
	}
	return New(next)
}

// ByID looks up a single activity.
func (c *Catalog) ByID(id string) (domain.ActivityDefinition, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Activities returns all definitions in catalog order.
func (c *Catalog) Activities() []domain.ActivityDefinition {
	out := make([]domain.ActivityDefinition, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// ByCategory returns the activities of one category in catalog order.
func (c *Catalog) ByCategory(cat domain.Category) []domain.ActivityDefinition {
	var out []domain.ActivityDefinition
	for _, a := range c.ordered {
		if a.Category == cat {
			out = append(out, a)
		}
	}
	return out
}

// BySource returns the activities fed by one source kind.
func (c *Catalog) BySource(kind domain.SourceKind) []domain.ActivityDefinition {
	var out []domain.ActivityDefinition
	for _, a := range c.ordered {
		if a.SourceKind == kind {
			out = append(out, a)
		}
	}
	return out
}

// IDs returns every activity id, sorted.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.byID))
	for id := range c.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
