package service

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	approvaldomain "github.com/sehatmu/amalan/internal/approval/domain"
	"github.com/sehatmu/amalan/internal/cache"
	"github.com/sehatmu/amalan/internal/catalog"
	"github.com/sehatmu/amalan/internal/counter"
	employeedomain "github.com/sehatmu/amalan/internal/employee/domain"
	eventdomain "github.com/sehatmu/amalan/internal/event/domain"
	"github.com/sehatmu/amalan/internal/kpi"
	"github.com/sehatmu/amalan/internal/normalize"
	"github.com/sehatmu/amalan/internal/observability/metrics"
	"github.com/sehatmu/amalan/internal/occurrence"
	"github.com/sehatmu/amalan/internal/report/domain"
	"github.com/sehatmu/amalan/internal/rollup"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// ServiceParam is the dependency set of the report service.
type ServiceParam struct {
	fx.In

	Provider  eventdomain.Provider
	Catalog   *catalog.Holder
	Approvals approvaldomain.Service
	Directory employeedomain.Directory
	Log       *zap.Logger
	Metrics   *metrics.Metrics   `optional:"true"`
	Cache     *cache.ReportCache `optional:"true"`
}

type reportService struct {
	provider  eventdomain.Provider
	catalog   *catalog.Holder
	approvals approvaldomain.Service
	directory employeedomain.Directory
	log       *zap.Logger
	metrics   *metrics.Metrics
	cache     *cache.ReportCache
}

func NewService(p ServiceParam) domain.Service {
	return &reportService{
		provider:  p.Provider,
		catalog:   p.Catalog,
		approvals: p.Approvals,
		directory: p.Directory,
		log:       p.Log.Named("report"),
		metrics:   p.Metrics,
		cache:     p.Cache,
	}
}

// sourcePass is the outcome of one fetch+normalize goroutine. Each pass
// owns its builder and diagnostics strictly until the errgroup joins, so
// no locking is needed around them.
type sourcePass struct {
	kind     eventdomain.Kind
	builder  *occurrence.Builder
	diag     *normalize.Diagnostics
	counters []eventdomain.ManualCounterRecord
	failed   bool
}

// aggregate is the merged view of all source passes for one request.
type aggregate struct {
	occ           *occurrence.Builder
	counters      []eventdomain.ManualCounterRecord
	diag          *normalize.Diagnostics
	failedSources []string
}

func (a *aggregate) partial() bool { return len(a.failedSources) > 0 }

// collect runs the seven source passes concurrently and merges their
// builders afterwards. A failing source is recorded and skipped rather
// than failing the whole aggregation; only context cancellation aborts.
func (s *reportService) collect(ctx context.Context, employeeIDs []string, r eventdomain.DateRange, monthKeys []string) (*aggregate, error) {
	cat := s.catalog.Get()
	norm := normalize.New(catalog.NewLabelTable(cat), s.log)

	kinds := eventdomain.Kinds()
	passes := make([]*sourcePass, len(kinds))
	for i, kind := range kinds {
		passes[i] = &sourcePass{
			kind:    kind,
			builder: occurrence.NewBuilder(),
			diag:    normalize.NewDiagnostics(),
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, pass := range passes {
		pass := pass
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records, err := s.fetch(gctx, pass.kind, employeeIDs, r, monthKeys)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				pass.failed = true
				s.metrics.RecordProviderFailure(gctx, string(pass.kind))
				s.log.Warn("source fetch failed, degrading",
					zap.String("source", string(pass.kind)),
					zap.Error(err),
				)
				return nil
			}
			for _, rec := range records {
				if rec.Kind == eventdomain.KindManualCounter && rec.Counter != nil {
					pass.counters = append(pass.counters, *rec.Counter)
				}
				pass.builder.AddAll(norm.Normalize(rec, pass.diag))
			}
			s.metrics.RecordOccurrences(gctx, string(pass.kind), pass.builder.Len())
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	agg := &aggregate{
		occ:  occurrence.NewBuilder(),
		diag: normalize.NewDiagnostics(),
	}
	for _, pass := range passes {
		if pass.failed {
			agg.failedSources = append(agg.failedSources, string(pass.kind))
			continue
		}
		agg.occ.Merge(pass.builder)
		agg.counters = append(agg.counters, pass.counters...)
		for label, n := range pass.diag.UnmappedLabels {
			agg.diag.UnmappedLabels[label] += n
			s.metrics.RecordUnmappedLabels(ctx, string(pass.kind), n)
		}
		agg.diag.DroppedRecords += pass.diag.DroppedRecords
	}
	if labels := agg.diag.Labels(); len(labels) > 0 {
		s.log.Warn("unmapped activity labels dropped", zap.Strings("labels", labels))
	}
	return agg, nil
}

func (s *reportService) fetch(ctx context.Context, kind eventdomain.Kind, employeeIDs []string, r eventdomain.DateRange, monthKeys []string) ([]eventdomain.Record, error) {
	switch kind {
	case eventdomain.KindPrayerLog:
		rows, err := s.provider.FetchPrayerEvents(ctx, employeeIDs, r)
		if err != nil {
			return nil, err
		}
		out := make([]eventdomain.Record, 0, len(rows))
		for _, row := range rows {
			out = append(out, eventdomain.NewPrayerRecord(row))
		}
		return out, nil
	case eventdomain.KindGroupSession:
		rows, err := s.provider.FetchGroupSessionEvents(ctx, employeeIDs, r)
		if err != nil {
			return nil, err
		}
		out := make([]eventdomain.Record, 0, len(rows))
		for _, row := range rows {
			out = append(out, eventdomain.NewGroupSessionRecord(row))
		}
		return out, nil
	case eventdomain.KindScheduledActivity:
		rows, err := s.provider.FetchScheduledActivityEvents(ctx, employeeIDs, r)
		if err != nil {
			return nil, err
		}
		out := make([]eventdomain.Record, 0, len(rows))
		for _, row := range rows {
			out = append(out, eventdomain.NewScheduledActivityRecord(row))
		}
		return out, nil
	case eventdomain.KindGroupReading:
		rows, err := s.provider.FetchGroupReadingSessions(ctx, r)
		if err != nil {
			return nil, err
		}
		members := make(map[string]bool, len(employeeIDs))
		for _, id := range employeeIDs {
			members[id] = true
		}
		out := make([]eventdomain.Record, 0, len(rows))
		for _, row := range rows {
			row := row
			kept := row.Participants[:0:0]
			for _, participant := range row.Participants {
				if members[participant] {
					kept = append(kept, participant)
				}
			}
			if len(kept) == 0 {
				continue
			}
			row.Participants = kept
			out = append(out, eventdomain.NewGroupReadingRecord(row))
		}
		return out, nil
	case eventdomain.KindExceptionRequest:
		rows, err := s.provider.FetchApprovedExceptions(ctx, employeeIDs, r)
		if err != nil {
			return nil, err
		}
		out := make([]eventdomain.Record, 0, len(rows))
		for _, row := range rows {
			out = append(out, eventdomain.NewExceptionRecord(row))
		}
		return out, nil
	case eventdomain.KindManualCounter:
		rows, err := s.provider.FetchManualCounters(ctx, employeeIDs, monthKeys)
		if err != nil {
			return nil, err
		}
		out := make([]eventdomain.Record, 0, len(rows))
		for _, row := range rows {
			out = append(out, eventdomain.NewCounterRecord(row))
		}
		return out, nil
	case eventdomain.KindReadingLog:
		rows, err := s.provider.FetchReadingLogs(ctx, employeeIDs, r)
		if err != nil {
			return nil, err
		}
		out := make([]eventdomain.Record, 0, len(rows))
		for _, row := range rows {
			out = append(out, eventdomain.NewReadingLogRecord(row))
		}
		return out, nil
	default:
		return nil, nil
	}
}

func (s *reportService) reconcile(ctx context.Context, agg *aggregate) counter.AchievedSet {
	cat := s.catalog.Get()
	rec := counter.NewReconciler(s.log)
	achieved := rec.Reconcile(cat, agg.counters, agg.occ)
	s.metrics.RecordInconsistentCounters(ctx, rec.Inconsistencies())
	return achieved
}

// PersonalProgress computes the ungated month view for one employee.
func (s *reportService) PersonalProgress(ctx context.Context, employeeID, monthKey string) (*domain.PersonalProgress, error) {
	s.metrics.RecordReportRequest(ctx, "personal_progress")
	if strings.TrimSpace(employeeID) == "" {
		return nil, domain.ErrInvalidEmployee
	}
	r, err := eventdomain.MonthRange(monthKey)
	if err != nil {
		return nil, domain.ErrInvalidMonthKey
	}
	if hit, ok := s.cache.GetProgress(employeeID, monthKey); ok {
		return hit, nil
	}

	agg, err := s.collect(ctx, []string{employeeID}, r, []string{monthKey})
	if err != nil {
		return nil, err
	}
	achieved := s.reconcile(ctx, agg)
	result := kpi.Compute(s.catalog.Get(), achieved, employeeID, []string{monthKey}, kpi.GateAll)

	cat := s.catalog.Get()
	activities := make([]domain.ActivityProgress, 0, len(cat.Activities()))
	for _, a := range cat.Activities() {
		got := achieved.Get(employeeID, monthKey, a.ID)
		activities = append(activities, domain.ActivityProgress{
			ActivityID: a.ID,
			Title:      a.Title,
			Category:   a.Category,
			Achieved:   got,
			Target:     a.MonthlyTarget,
			Percentage: kpi.Percentage(min(got, a.MonthlyTarget), a.MonthlyTarget),
			Days:       agg.occ.ActivityDays(employeeID, monthKey, a.ID),
		})
	}

	progress := &domain.PersonalProgress{
		EmployeeID:    employeeID,
		MonthKey:      monthKey,
		Activities:    activities,
		Result:        result,
		FailedSources: agg.failedSources,
		PartialData:   agg.partial(),
	}
	s.cache.SetProgress(progress)
	return progress, nil
}

// OfficialKpi computes the approval-gated yearly score. Only months with
// an approved submission count toward targets.
func (s *reportService) OfficialKpi(ctx context.Context, employeeID string, year int) (*domain.OfficialKpi, error) {
	s.metrics.RecordReportRequest(ctx, "official_kpi")
	if strings.TrimSpace(employeeID) == "" {
		return nil, domain.ErrInvalidEmployee
	}
	if year < 2000 || year > 9999 {
		return nil, domain.ErrInvalidYear
	}
	if hit, ok := s.cache.GetOfficial(employeeID, year); ok {
		return hit, nil
	}

	months := normalize.MonthKeysOfYear(year)
	countable, err := s.approvals.CountableMonths(ctx, employeeID, months)
	if err != nil {
		return nil, err
	}

	agg, err := s.collect(ctx, []string{employeeID}, eventdomain.YearRange(year), months)
	if err != nil {
		return nil, err
	}
	achieved := s.reconcile(ctx, agg)
	result := kpi.Compute(s.catalog.Get(), achieved, employeeID, months, kpi.GateSet(countable))

	official := &domain.OfficialKpi{
		EmployeeID:    employeeID,
		Year:          year,
		Result:        result,
		FailedSources: agg.failedSources,
		PartialData:   agg.partial(),
	}
	s.cache.SetOfficial(official)
	return official, nil
}

// OrganizationalRollup computes gated comparison rows over an authorized
// employee-id set. The period is a month key or a four digit year.
func (s *reportService) OrganizationalRollup(ctx context.Context, employeeIDs []string, groupBy rollup.GroupBy, period string) (*domain.RollupReport, error) {
	s.metrics.RecordReportRequest(ctx, "organizational_rollup")
	if groupBy != rollup.ByUnit && groupBy != rollup.ByHospital {
		return nil, domain.ErrInvalidGroupBy
	}
	if len(employeeIDs) == 0 {
		return nil, domain.ErrNoEmployees
	}

	r, months, err := parsePeriod(period)
	if err != nil {
		return nil, err
	}

	employees, err := s.directory.List(ctx, employeeIDs)
	if err != nil {
		return nil, err
	}

	agg, err := s.collect(ctx, employeeIDs, r, months)
	if err != nil {
		return nil, err
	}
	achieved := s.reconcile(ctx, agg)

	cat := s.catalog.Get()
	members := make([]rollup.MemberScore, 0, len(employees))
	for _, emp := range employees {
		countable, err := s.approvals.CountableMonths(ctx, emp.ID, months)
		if err != nil {
			return nil, err
		}
		members = append(members, rollup.MemberScore{
			EmployeeID: emp.ID,
			UnitID:     emp.UnitID,
			HospitalID: emp.HospitalID,
			Result:     kpi.Compute(cat, achieved, emp.ID, months, kpi.GateSet(countable)),
		})
	}

	return &domain.RollupReport{
		Period:        period,
		GroupBy:       groupBy,
		Rows:          rollup.Rollup(members, groupBy),
		FailedSources: agg.failedSources,
		PartialData:   agg.partial(),
	}, nil
}

func parsePeriod(period string) (eventdomain.DateRange, []string, error) {
	period = strings.TrimSpace(period)
	if yearPattern.MatchString(period) {
		year, err := strconv.Atoi(period)
		if err != nil || year < 2000 {
			return eventdomain.DateRange{}, nil, domain.ErrInvalidPeriod
		}
		return eventdomain.YearRange(year), normalize.MonthKeysOfYear(year), nil
	}
	r, err := eventdomain.MonthRange(period)
	if err != nil {
		return eventdomain.DateRange{}, nil, domain.ErrInvalidPeriod
	}
	return r, []string{period}, nil
}
