package services

import (
	"context"
	"testing"
	"time"

	"sk-barangay-service/internal/domain/models"
	"sk-barangay-service/internal/error/code"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIncidentService(t *testing.T, year int) *IncidentService {
	db, cfg := newTestDB(t)
	svc := NewIncidentService(db, cfg, NewHistoryService(db, cfg)).(*IncidentService)
	svc.now = fixedClock(year, time.March, 10)
	return svc
}

func blotter(date string) IncidentInput {
	return IncidentInput{
		IncidentType: "Noise complaint",
		Location:     "Purok 3",
		Date:         date,
		Time:         "21:30",
		Complainant:  "Juan Dela Cruz",
		Respondent:   "Pedro Reyes",
		Description:  "Loud karaoke past curfew",
	}
}

func TestSequentialReferenceNumbers(t *testing.T) {
	svc := newIncidentService(t, 2024)
	ctx := context.Background()

	var refs []string
	for i := 0; i < 3; i++ {
		incident, err := svc.CreateIncident(ctx, 0, blotter("2024-03-01"))
		require.NoError(t, err)
		refs = append(refs, incident.ReferenceNumber)
		assert.Equal(t, models.IncidentPending, incident.Status)
	}
	assert.Equal(t, []string{"INC-2024-0001", "INC-2024-0002", "INC-2024-0003"}, refs)
}

func TestReferenceSequenceResetsPerYear(t *testing.T) {
	svc := newIncidentService(t, 2024)
	ctx := context.Background()

	_, err := svc.CreateIncident(ctx, 0, blotter("2024-12-31"))
	require.NoError(t, err)

	svc.now = fixedClock(2025, time.January, 2)
	incident, err := svc.CreateIncident(ctx, 0, blotter("2025-01-01"))
	require.NoError(t, err)
	assert.Equal(t, "INC-2025-0001", incident.ReferenceNumber)
}

func TestReferenceCollisionRegeneratesOnce(t *testing.T) {
	svc := newIncidentService(t, 2024)
	ctx := context.Background()

	manual := blotter("2024-03-01")
	manual.ReferenceNumber = "INC-2024-0001"
	first, err := svc.CreateIncident(ctx, 0, manual)
	require.NoError(t, err)
	assert.Equal(t, "INC-2024-0001", first.ReferenceNumber)

	// the counter hands out 0001, which is taken, so it is bumped once more
	second, err := svc.CreateIncident(ctx, 0, blotter("2024-03-02"))
	require.NoError(t, err)
	assert.Equal(t, "INC-2024-0002", second.ReferenceNumber)
}

func TestSeedsSequenceFromExistingIncidents(t *testing.T) {
	svc := newIncidentService(t, time.Now().Year())
	ctx := context.Background()

	for _, ref := range []string{"LEGACY-1", "LEGACY-2"} {
		in := blotter("2024-01-01")
		require.NoError(t, svc.DB.Create(&models.Incident{
			ReferenceNumber: ref, IncidentType: in.IncidentType, Location: in.Location, Date: in.Date,
			Time: in.Time, Complainant: in.Complainant, Respondent: in.Respondent, Description: in.Description,
			Status: models.IncidentPending,
		}).Error)
	}

	ref, err := svc.GenerateReferenceNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INC-"+time.Now().Format("2006")+"-0003", ref)
}

func TestUpdateIncidentKeepsReferenceAndStatus(t *testing.T) {
	svc := newIncidentService(t, 2024)
	ctx := context.Background()

	a, err := svc.CreateIncident(ctx, 0, blotter("2024-03-01"))
	require.NoError(t, err)
	b, err := svc.CreateIncident(ctx, 0, blotter("2024-03-02"))
	require.NoError(t, err)

	in := blotter("2024-03-05")
	in.Status = models.IncidentResolved
	updated, err := svc.UpdateIncident(ctx, 0, a.ID, in)
	require.NoError(t, err)
	assert.Equal(t, a.ReferenceNumber, updated.ReferenceNumber)
	assert.Equal(t, models.IncidentResolved, updated.Status)
	assert.Equal(t, "2024-03-05", updated.Date)

	in.Status = ""
	in.ReferenceNumber = b.ReferenceNumber
	_, err = svc.UpdateIncident(ctx, 0, a.ID, in)
	require.Error(t, err)
	assert.Equal(t, "Reference number already exists", err.Error())

	in.ReferenceNumber = ""
	again, err := svc.UpdateIncident(ctx, 0, a.ID, in)
	require.NoError(t, err)
	assert.Equal(t, models.IncidentResolved, again.Status)
}

func TestIncidentValidation(t *testing.T) {
	in := IncidentInput{Status: "closed", Time: "25:99", Date: "2024-3-1"}
	in.normalize()
	err := in.Validate()
	require.Error(t, err)
	assert.True(t, code.Is(err, code.ErrValidation))
	for _, msg := range []string{
		"Incident type is required", "Location is required", "Invalid date format", "Invalid time format",
		"Complainant is required", "Respondent is required", "Description is required", "Invalid status value",
	} {
		assert.Contains(t, err.Error(), msg)
	}
}

func TestListIncidentFilters(t *testing.T) {
	svc := newIncidentService(t, 2024)
	ctx := context.Background()

	for _, date := range []string{"2024-03-01", "2024-03-15", "2024-04-01", "2023-03-20"} {
		_, err := svc.CreateIncident(ctx, 0, blotter(date))
		require.NoError(t, err)
	}
	dismiss := blotter("2024-05-01")
	dismiss.Status = models.IncidentDismissed
	_, err := svc.CreateIncident(ctx, 0, dismiss)
	require.NoError(t, err)

	all, err := svc.GetAllIncidents(ctx, IncidentFilter{Status: "all", Month: "all", Year: "all"})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "2024-05-01", all[0].Date)

	march, err := svc.GetAllIncidents(ctx, IncidentFilter{Month: "3"})
	require.NoError(t, err)
	assert.Len(t, march, 3)

	march2024, err := svc.GetAllIncidents(ctx, IncidentFilter{Month: "03", Year: "2024"})
	require.NoError(t, err)
	assert.Len(t, march2024, 2)

	dismissed, err := svc.GetAllIncidents(ctx, IncidentFilter{Status: models.IncidentDismissed})
	require.NoError(t, err)
	assert.Len(t, dismissed, 1)

	_, err = svc.GetAllIncidents(ctx, IncidentFilter{Month: "13"})
	assert.True(t, code.Is(err, code.ErrValidation))
}

func TestDeleteIncident(t *testing.T) {
	svc := newIncidentService(t, 2024)
	ctx := context.Background()

	incident, err := svc.CreateIncident(ctx, 0, blotter("2024-03-01"))
	require.NoError(t, err)
	require.NoError(t, svc.DeleteIncident(ctx, 0, incident.ID))

	_, err = svc.GetIncidentByID(ctx, incident.ID)
	assert.True(t, code.Is(err, code.ErrIncidentNotFound))

	count, err := svc.CountIncidents(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
