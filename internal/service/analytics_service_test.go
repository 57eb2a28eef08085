package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-insights/internal/org"
	"github.com/spec-kit/ticket-insights/internal/report"
	"github.com/spec-kit/ticket-insights/pkg/util/errorutil"
)

const fullHeader = "ID,Title,Resp Group,Requestor,Requestor Email,Requestor Phone," +
	"Acct/Dept,Class Support Building,Room number,Classroom Problem Types,Created,Modified,Status"

func newTestService(t *testing.T, contents string) *AnalyticsService {
	t.Helper()
	path := filepath.Join(t.TempDir(), "report.csv")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	rep, err := report.NewReport(path, zap.NewNop())
	if err != nil {
		t.Fatalf("NewReport: %v", err)
	}
	organization := org.NewOrganization()
	if err := rep.Populate(organization); err != nil {
		t.Fatalf("Populate: %v", err)
	}
	return NewAnalyticsService(AnalyticsDependencies{
		Report: rep,
		Org:    organization,
		Logger: zap.NewNop(),
	})
}

func fullReport() string {
	return fullHeader + "\n" +
		`1,Projector out,USS-Classrooms,Eric,eric@example.edu,555,CS,Lawrence,177,Projector,2023-01-02 10:00,2023-01-02 10:00,Closed` + "\n" +
		`2,No sound,USS-Classrooms,Alex,alex@example.edu,556,Math,Lawrence,166,Audio,2023-01-09 09:00,2023-01-09 09:00,New` + "\n" +
		`3,Frozen screen,USS-Classrooms,Sam,sam@example.edu,557,Physics,Willamette,100,Computer,2023-01-20 14:00,2023-01-20 14:00,New` + "\n"
}

func TestQueryOptionsValidate(t *testing.T) {
	end := time.Date(2023, time.March, 20, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		opts    QueryOptions
		wantErr bool
	}{
		{name: "empty", opts: QueryOptions{}},
		{name: "weeks only", opts: QueryOptions{Weeks: 10}},
		{name: "termend only", opts: QueryOptions{TermEnd: &end}},
		{name: "weeks and termend conflict", opts: QueryOptions{Weeks: 10, TermEnd: &end}, wantErr: true},
		{name: "negative weeks", opts: QueryOptions{Weeks: -1}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPerWeekQuery(t *testing.T) {
	svc := newTestService(t, fullReport())
	start := time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)
	buckets, err := svc.PerWeek(QueryOptions{TermStart: &start, Weeks: 3})
	if err != nil {
		t.Fatalf("PerWeek: %v", err)
	}
	if len(buckets) != 3 {
		t.Fatalf("got %d buckets, want 3", len(buckets))
	}
	for i, b := range buckets {
		if b.Count != 1 {
			t.Errorf("bucket %d: got %d, want 1", i, b.Count)
		}
	}
}

func TestPerWeekRefusedWithoutCreatedField(t *testing.T) {
	contents := "ID,Title,Class Support Building,Room number\n" +
		"1,Projector out,Lawrence,177\n"
	svc := newTestService(t, contents)
	_, err := svc.PerWeek(QueryOptions{})
	if err == nil {
		t.Fatal("per-week must be refused when Created is absent")
	}
	if errorutil.ToDomainError(err).Code != "VALIDATION_FAILED" {
		t.Errorf("got code %q", errorutil.ToDomainError(err).Code)
	}
}

func TestPerBuildingQuery(t *testing.T) {
	svc := newTestService(t, fullReport())
	buckets, err := svc.PerBuilding(QueryOptions{})
	if err != nil {
		t.Fatalf("PerBuilding: %v", err)
	}
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2", len(buckets))
	}
	if buckets[0].Label != "Lawrence" || buckets[0].Count != 2 {
		t.Errorf("bucket 0: got %v", buckets[0])
	}
}

func TestPerRoomRequiresKnownBuilding(t *testing.T) {
	svc := newTestService(t, fullReport())

	if _, err := svc.PerRoom(QueryOptions{}); err == nil {
		t.Error("per-room without building must fail")
	}

	_, err := svc.PerRoom(QueryOptions{Building: "Straub"})
	if err == nil {
		t.Fatal("unknown building must fail")
	}
	if errorutil.ToDomainError(err).Code != "NOT_FOUND" {
		t.Errorf("got code %q, want NOT_FOUND", errorutil.ToDomainError(err).Code)
	}

	buckets, err := svc.PerRoom(QueryOptions{Building: "Lawrence"})
	if err != nil {
		t.Fatalf("PerRoom: %v", err)
	}
	if len(buckets) != 2 {
		t.Errorf("got %d rooms, want 2", len(buckets))
	}
}

func TestPerRequestorQuery(t *testing.T) {
	svc := newTestService(t, fullReport())
	buckets, err := svc.PerRequestor(QueryOptions{})
	if err != nil {
		t.Fatalf("PerRequestor: %v", err)
	}
	if len(buckets) != 3 {
		t.Errorf("got %d requestors, want 3", len(buckets))
	}
}

func TestUnknownDiagnosisFilterIsValidationError(t *testing.T) {
	svc := newTestService(t, fullReport())
	_, err := svc.PerBuilding(QueryOptions{Diagnoses: []string{"Gremlins"}})
	if err == nil {
		t.Fatal("unknown diagnosis filter must fail")
	}
	if errorutil.ToDomainError(err).Code != "VALIDATION_FAILED" {
		t.Errorf("got code %q", errorutil.ToDomainError(err).Code)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		text string
		want time.Time
	}{
		{"2023-01-02", time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)},
		{"01/02/2023", time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)},
		{"02.01.2023", time.Date(2023, time.January, 2, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.text)
		if err != nil {
			t.Errorf("ParseDate(%q): %v", tt.text, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q): got %v, want %v", tt.text, got, tt.want)
		}
	}

	if _, err := ParseDate("next tuesday"); err == nil {
		t.Error("expected error for unrecognized date")
	}
}
