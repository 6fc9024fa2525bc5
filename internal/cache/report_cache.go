package cache

import (
	"strconv"
	"strings"
	"time"

	reportdomain "github.com/sehatmu/amalan/internal/report/domain"
)

const (
	defaultProgressTTL = 30 * time.Second
	defaultOfficialTTL = 5 * time.Minute
)

// ReportCache keeps recently computed report results so dashboard
// refresh loops do not re-run the full source fan-out. Partial results
// are never cached.
type ReportCache struct {
	progress    Cache[string, *reportdomain.PersonalProgress]
	official    Cache[string, *reportdomain.OfficialKpi]
	progressTTL time.Duration
	officialTTL time.Duration
}

func NewReportCache() *ReportCache {
	return &ReportCache{
		progress:    NewTTLCache[string, *reportdomain.PersonalProgress](),
		official:    NewTTLCache[string, *reportdomain.OfficialKpi](),
		progressTTL: defaultProgressTTL,
		officialTTL: defaultOfficialTTL,
	}
}

func (c *ReportCache) GetProgress(employeeID, monthKey string) (*reportdomain.PersonalProgress, bool) {
	if c == nil {
		return nil, false
	}
	return c.progress.Get(cacheKey(employeeID, monthKey))
}

func (c *ReportCache) SetProgress(p *reportdomain.PersonalProgress) {
	if c == nil || p == nil || p.PartialData {
		return
	}
	c.progress.Set(cacheKey(p.EmployeeID, p.MonthKey), p, c.progressTTL)
}

func (c *ReportCache) GetOfficial(employeeID string, year int) (*reportdomain.OfficialKpi, bool) {
	if c == nil {
		return nil, false
	}
	return c.official.Get(cacheKey(employeeID, yearKey(year)))
}

func (c *ReportCache) SetOfficial(k *reportdomain.OfficialKpi) {
	if c == nil || k == nil || k.PartialData {
		return
	}
	c.official.Set(cacheKey(k.EmployeeID, yearKey(k.Year)), k, c.officialTTL)
}

// InvalidateOfficial drops an employee's official entry, used when an
// approval decision changes what counts.
func (c *ReportCache) InvalidateOfficial(employeeID string, year int) {
	if c == nil {
		return
	}
	c.official.Delete(cacheKey(employeeID, yearKey(year)))
}

func cacheKey(parts ...string) string {
	return strings.Join(parts, "|")
}

func yearKey(year int) string {
	return strconv.Itoa(year)
}
