package scheduler

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecclesia-app/ecclesia-backend/pkg/db/models"
	"github.com/ecclesia-app/ecclesia-backend/pkg/enums"
)

// testNow is a Sunday at noon; most fixtures schedule the following Sunday.
var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

type fakeRepo struct {
	users        []models.User
	schedules    []models.Schedule
	assignments  []models.ScheduleAssignment
	ministries   []models.Ministry
	functions    []models.MinistryFunction
	quals        map[string]bool
	availability map[uuid.UUID][]models.UserAvailability
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		quals:        map[string]bool{},
		availability: map[uuid.UUID][]models.UserAvailability{},
	}
}

func qualKey(userID, functionID uuid.UUID) string {
	return userID.String() + "/" + functionID.String()
}

func (f *fakeRepo) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			user := f.users[i]
			return &user, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListActiveUsers(_ context.Context) ([]models.User, error) {
	var active []models.User
	for _, user := range f.users {
		if user.IsActive {
			active = append(active, user)
		}
	}
	return active, nil
}

func (f *fakeRepo) GetSchedule(_ context.Context, id uuid.UUID) (*models.Schedule, error) {
	for i := range f.schedules {
		if f.schedules[i].ID == id {
			schedule := f.schedules[i]
			return &schedule, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListSchedulesInRange(_ context.Context, from, to time.Time) ([]models.Schedule, error) {
	var out []models.Schedule
	for _, schedule := range f.schedules {
		if !schedule.Date.Before(from) && !schedule.Date.After(to) {
			out = append(out, schedule)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAssignmentsForSchedule(_ context.Context, scheduleID uuid.UUID) ([]models.ScheduleAssignment, error) {
	var out []models.ScheduleAssignment
	for _, assignment := range f.assignments {
		if assignment.ScheduleID == scheduleID {
			out = append(out, assignment)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAssignmentsForUser(_ context.Context, userID uuid.UUID) ([]models.ScheduleAssignment, error) {
	var out []models.ScheduleAssignment
	for _, assignment := range f.assignments {
		if assignment.UserID == userID {
			out = append(out, assignment)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountUserAssignmentsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	for _, assignment := range f.assignments {
		if assignment.UserID != userID {
			continue
		}
		schedule, _ := f.GetSchedule(ctx, assignment.ScheduleID)
		if schedule == nil {
			continue
		}
		if !schedule.Date.Before(from) && !schedule.Date.After(to) {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) ListUserAssignmentsOnDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.ScheduleAssignment, error) {
	var out []models.ScheduleAssignment
	for _, assignment := range f.assignments {
		if assignment.UserID != userID {
			continue
		}
		schedule, _ := f.GetSchedule(ctx, assignment.ScheduleID)
		if schedule == nil {
			continue
		}
		y1, m1, d1 := schedule.Date.Date()
		y2, m2, d2 := day.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			out = append(out, assignment)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAssignment(_ context.Context, assignment *models.ScheduleAssignment) error {
	for _, existing := range f.assignments {
		if existing.ScheduleID == assignment.ScheduleID && existing.UserID == assignment.UserID {
			return errors.New(`duplicate key value violates unique constraint "idx_schedule_user"`)
		}
	}
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	f.assignments = append(f.assignments, *assignment)
	return nil
}

func (f *fakeRepo) GetMinistry(_ context.Context, id uuid.UUID) (*models.Ministry, error) {
	for i := range f.ministries {
		if f.ministries[i].ID == id {
			ministry := f.ministries[i]
			return &ministry, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListMinistryFunctions(_ context.Context, ministryID uuid.UUID) ([]models.MinistryFunction, error) {
	var out []models.MinistryFunction
	for _, function := range f.functions {
		if function.MinistryID == ministryID {
			out = append(out, function)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetFunction(_ context.Context, id uuid.UUID) (*models.MinistryFunction, error) {
	for i := range f.functions {
		if f.functions[i].ID == id {
			function := f.functions[i]
			return &function, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) HasQualification(_ context.Context, userID, functionID uuid.UUID) (bool, error) {
	return f.quals[qualKey(userID, functionID)], nil
}

func (f *fakeRepo) ListUserAvailability(_ context.Context, userID uuid.UUID) ([]models.UserAvailability, error) {
	return f.availability[userID], nil
}

func (f *fakeRepo) addUser(name string, active bool) models.User {
	user := models.User{
		ID:       uuid.New(),
		Email:    name + "@example.org",
		Name:     name,
		IsActive: active,
	}
	f.users = append(f.users, user)
	return user
}

func (f *fakeRepo) addSchedule(name string, date time.Time) models.Schedule {
	schedule := models.Schedule{
		ID:   uuid.New(),
		Date: date,
		Name: &name,
		Type: enums.ScheduleTypeService,
	}
	f.schedules = append(f.schedules, schedule)
	return schedule
}

// addHistory seeds past assignments for a user: total rows, confirmed of them
// confirmed, recent of them dated inside the rotation window.
func (f *fakeRepo) addHistory(userID uuid.UUID, total, confirmed, recent int) {
	for i := 0; i < total; i++ {
		date := testNow.AddDate(0, 0, -(rotationWindowDays + 10 + i))
		if i < recent {
			date = testNow.AddDate(0, 0, -(i + 1))
		}
		schedule := f.addSchedule("past service", date)
		status := enums.AssignmentStatusDeclined
		if i < confirmed {
			status = enums.AssignmentStatusConfirmed
		}
		f.assignments = append(f.assignments, models.ScheduleAssignment{
			ID:         uuid.New(),
			ScheduleID: schedule.ID,
			UserID:     userID,
			Status:     status,
		})
	}
}

func newTestService(t *testing.T, repo Repository) *service {
	t.Helper()
	svc, err := NewService(Params{Repo: repo, Now: func() time.Time { return testNow }})
	require.NoError(t, err)
	return svc.(*service)
}

func TestScoreUnavailableVolunteerDisqualified(t *testing.T) {
	repo := newFakeRepo()
	user := repo.addUser("Marta", true)
	repo.availability[user.ID] = []models.UserAvailability{
		{UserID: user.ID, Weekday: int(time.Saturday), Available: true},
	}
	svc := newTestService(t, repo)

	sunday := testNow.AddDate(0, 0, 7)
	score, err := svc.Score(context.Background(), &user, sunday, nil)
	require.NoError(t, err)

	assert.Zero(t, score.Total)
	require.Len(t, score.Reasons, 1)
	assert.Equal(t, "not available on Sundays", score.Reasons[0])

	ranked, err := svc.Rank(context.Background(), sunday, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestScoreNewVolunteerBaseline(t *testing.T) {
	repo := newFakeRepo()
	ministry := models.Ministry{ID: uuid.New(), Name: "Worship"}
	repo.ministries = append(repo.ministries, ministry)
	function := models.MinistryFunction{ID: uuid.New(), MinistryID: ministry.ID, Name: "Vocal"}
	repo.functions = append(repo.functions, function)
	user := repo.addUser("Ana", true)
	svc := newTestService(t, repo)

	score, err := svc.Score(context.Background(), &user, testNow.AddDate(0, 0, 7), &function.ID)
	require.NoError(t, err)

	// Available (no rows), not a specialist, never served, assumed reliable.
	assert.Equal(t, 40+5+20+7, score.Total)
	require.Len(t, score.Reasons, 4)
	assert.Equal(t, "available on Sunday", score.Reasons[0])
	assert.Equal(t, "can serve without the requested specialization", score.Reasons[1])
	assert.Equal(t, "has not served in the last 30 days, boosts rotation", score.Reasons[2])
	assert.Equal(t, "no serving history yet, assumed reliable", score.Reasons[3])
}

func TestScoreStaysWithinBounds(t *testing.T) {
	repo := newFakeRepo()
	ministry := models.Ministry{ID: uuid.New(), Name: "Sound"}
	repo.ministries = append(repo.ministries, ministry)
	function := models.MinistryFunction{ID: uuid.New(), MinistryID: ministry.ID, Name: "Sound desk"}
	repo.functions = append(repo.functions, function)

	best := repo.addUser("best case", true)
	repo.quals[qualKey(best.ID, function.ID)] = true
	repo.addHistory(best.ID, 10, 10, 0)

	worst := repo.addUser("worst qualifying case", true)
	repo.addHistory(worst.ID, 10, 0, 5)

	svc := newTestService(t, repo)
	date := testNow.AddDate(0, 0, 7)

	for _, user := range []models.User{best, worst} {
		score, err := svc.Score(context.Background(), &user, date, &function.ID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, score.Total, 20, "qualifying score below floor for %s", user.Name)
		assert.LessOrEqual(t, score.Total, 100, "score above ceiling for %s", user.Name)
	}

	bestScore, err := svc.Score(context.Background(), &best, date, &function.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, bestScore.Total)
}

func TestRankPrefersRestedReliableSpecialist(t *testing.T) {
	repo := newFakeRepo()
	ministry := models.Ministry{ID: uuid.New(), Name: "Sound"}
	repo.ministries = append(repo.ministries, ministry)
	function := models.MinistryFunction{ID: uuid.New(), MinistryID: ministry.ID, Name: "Sonoplastia"}
	repo.functions = append(repo.functions, function)

	// A: specialist, rested, 90% confirmation. Expected 40+30+20+10.
	volunteerA := repo.addUser("Volunteer A", true)
	repo.quals[qualKey(volunteerA.ID, function.ID)] = true
	repo.addHistory(volunteerA.ID, 10, 9, 0)

	// B: specialist, served three times this month, 40% confirmation.
	// Expected 40+30+5+0.
	volunteerB := repo.addUser("Volunteer B", true)
	repo.quals[qualKey(volunteerB.ID, function.ID)] = true
	repo.addHistory(volunteerB.ID, 5, 2, 3)

	svc := newTestService(t, repo)
	date := testNow.AddDate(0, 0, 7)

	scoreA, err := svc.Score(context.Background(), &volunteerA, date, &function.ID)
	require.NoError(t, err)
	scoreB, err := svc.Score(context.Background(), &volunteerB, date, &function.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, scoreA.Total)
	assert.Equal(t, 75, scoreB.Total)

	ranked, err := svc.Rank(context.Background(), date, &function.ID, 1)
	require.NoError(t, err)
	require.Len(t, ranked, 1)
	assert.Equal(t, volunteerA.ID, ranked[0].UserID)
	require.NotNil(t, ranked[0].FunctionName)
	assert.Equal(t, "Sonoplastia", *ranked[0].FunctionName)
}

func TestPlanMinistryTakesTopCandidatePerFunction(t *testing.T) {
	repo := newFakeRepo()
	ministry := models.Ministry{ID: uuid.New(), Name: "Worship"}
	repo.ministries = append(repo.ministries, ministry)
	vocal := models.MinistryFunction{ID: uuid.New(), MinistryID: ministry.ID, Name: "Vocal"}
	keys := models.MinistryFunction{ID: uuid.New(), MinistryID: ministry.ID, Name: "Keys"}
	repo.functions = append(repo.functions, vocal, keys)

	for i := 0; i < 4; i++ {
		user := repo.addUser("volunteer", true)
		repo.quals[qualKey(user.ID, vocal.ID)] = i%2 == 0
	}
	schedule := repo.addSchedule("Sunday service", testNow.AddDate(0, 0, 7))

	svc := newTestService(t, repo)
	plan, err := svc.Plan(context.Background(), []uuid.UUID{schedule.ID}, &ministry.ID)
	require.NoError(t, err)

	require.Len(t, plan.Suggestions, 1)
	record := plan.Suggestions[0]
	assert.Equal(t, schedule.ID, record.ScheduleID)
	assert.Equal(t, "Sunday service", record.ScheduleName)
	// One winner per function, merged into the same record.
	require.Len(t, record.Suggestions, 2)
	require.NotNil(t, record.Suggestions[0].FunctionName)
	assert.Equal(t, "Vocal", *record.Suggestions[0].FunctionName)
	require.NotNil(t, record.Suggestions[1].FunctionName)
	assert.Equal(t, "Keys", *record.Suggestions[1].FunctionName)
}

func TestPlanGeneralSlotLimitsToThree(t *testing.T) {
	repo := newFakeRepo()
	for i := 0; i < 5; i++ {
		repo.addUser("volunteer", true)
	}
	schedule := repo.addSchedule("prayer night", testNow.AddDate(0, 0, 3))

	svc := newTestService(t, repo)
	plan, err := svc.Plan(context.Background(), []uuid.UUID{schedule.ID}, nil)
	require.NoError(t, err)

	require.Len(t, plan.Suggestions, 1)
	assert.Len(t, plan.Suggestions[0].Suggestions, 3)
	for _, candidate := range plan.Suggestions[0].Suggestions {
		assert.Nil(t, candidate.FunctionID)
	}
}

func TestPlanStatsMatchSuggestions(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("volunteer one", true)
	repo.addUser("volunteer two", true)
	first := repo.addSchedule("first", testNow.AddDate(0, 0, 2))
	second := repo.addSchedule("second", testNow.AddDate(0, 0, 9))
	missing := uuid.New()

	svc := newTestService(t, repo)
	plan, err := svc.Plan(context.Background(), []uuid.UUID{first.ID, second.ID, missing}, nil)
	require.NoError(t, err)

	assert.Equal(t, 3, plan.Stats.TotalSchedules)
	total := 0
	sum := 0
	for _, record := range plan.Suggestions {
		total += len(record.Suggestions)
		for _, candidate := range record.Suggestions {
			sum += candidate.Score
		}
	}
	require.Equal(t, total, plan.Stats.TotalSuggestions)
	assert.InDelta(t, float64(sum)/float64(total), plan.Stats.AvgScore, 1e-9)
}

func TestPlanEmptyBatchHasZeroAverage(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)

	plan, err := svc.Plan(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Zero(t, plan.Stats.TotalSchedules)
	assert.Zero(t, plan.Stats.TotalSuggestions)
	assert.Zero(t, plan.Stats.AvgScore)
	assert.Empty(t, plan.Suggestions)
}

func TestPlanUnknownMinistryFails(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(t, repo)

	missing := uuid.New()
	_, err := svc.Plan(context.Background(), nil, &missing)
	require.Error(t, err)
}

func TestSuggestRejectsInvertedRange(t *testing.T) {
	svc := newTestService(t, newFakeRepo())

	_, err := svc.Suggest(context.Background(), SuggestParams{
		StartDate: testNow.AddDate(0, 0, 7),
		EndDate:   testNow,
	})
	require.Error(t, err)

	_, err = svc.Suggest(context.Background(), SuggestParams{
		StartDate: testNow,
		EndDate:   testNow.AddDate(0, 0, 365),
	})
	require.Error(t, err)
}

func TestSuggestPlansSchedulesInRange(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("volunteer", true)
	inRange := repo.addSchedule("in range", testNow.AddDate(0, 0, 5))
	repo.addSchedule("out of range", testNow.AddDate(0, 0, 40))

	svc := newTestService(t, repo)
	plan, err := svc.Suggest(context.Background(), SuggestParams{
		StartDate: testNow,
		EndDate:   testNow.AddDate(0, 0, 14),
	})
	require.NoError(t, err)

	require.Len(t, plan.Suggestions, 1)
	assert.Equal(t, inRange.ID, plan.Suggestions[0].ScheduleID)
}

func TestApplyIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("volunteer one", true)
	repo.addUser("volunteer two", true)
	schedule := repo.addSchedule("Sunday service", testNow.AddDate(0, 0, 7))

	svc := newTestService(t, repo)
	plan, err := svc.Plan(context.Background(), []uuid.UUID{schedule.ID}, nil)
	require.NoError(t, err)

	first, err := svc.Apply(context.Background(), plan.Suggestions)
	require.NoError(t, err)
	assert.Equal(t, 2, first.AssignmentsCreated)
	assert.Empty(t, first.Errors)

	second, err := svc.Apply(context.Background(), plan.Suggestions)
	require.NoError(t, err)
	assert.Zero(t, second.AssignmentsCreated)
	require.Len(t, second.Errors, 2)
	for _, msg := range second.Errors {
		assert.Contains(t, msg, reasonAlreadyOnSchedule)
	}
	assert.Len(t, repo.assignments, 2)
}

func TestApplyCreatesPendingAssignmentsWithScoreNotes(t *testing.T) {
	repo := newFakeRepo()
	repo.addUser("volunteer", true)
	schedule := repo.addSchedule("Sunday service", testNow.AddDate(0, 0, 7))

	svc := newTestService(t, repo)
	plan, err := svc.Plan(context.Background(), []uuid.UUID{schedule.ID}, nil)
	require.NoError(t, err)
	expected := plan.Suggestions[0].Suggestions[0].Score

	result, err := svc.Apply(context.Background(), plan.Suggestions)
	require.NoError(t, err)
	require.Equal(t, 1, result.AssignmentsCreated)

	created := repo.assignments[0]
	assert.Equal(t, enums.AssignmentStatusPending, created.Status)
	require.NotNil(t, created.Notes)
	assert.Contains(t, *created.Notes, "auto-assigned with score")
	assert.Contains(t, *created.Notes, strconv.Itoa(expected))
}

func TestApplyRejectsSameDayDoubleBooking(t *testing.T) {
	repo := newFakeRepo()
	user := repo.addUser("busy volunteer", true)
	day := testNow.AddDate(0, 0, 7)
	morning := repo.addSchedule("morning service", day.Add(-3*time.Hour))
	evening := repo.addSchedule("evening service", day.Add(6*time.Hour))

	svc := newTestService(t, repo)
	suggestions := []ScheduleSuggestion{
		{ScheduleID: morning.ID, ScheduleName: "morning service", Suggestions: []CandidateSuggestion{
			{UserID: user.ID, UserName: user.Name, Score: 85},
		}},
		{ScheduleID: evening.ID, ScheduleName: "evening service", Suggestions: []CandidateSuggestion{
			{UserID: user.ID, UserName: user.Name, Score: 85},
		}},
	}

	result, err := svc.Apply(context.Background(), suggestions)
	require.NoError(t, err)
	assert.Equal(t, 1, result.AssignmentsCreated)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], reasonSameDayConflict)
	assert.Contains(t, result.Errors[0], user.Name)
}

func TestApplyRejectsVolunteerDeactivatedAfterPlanning(t *testing.T) {
	repo := newFakeRepo()
	user := repo.addUser("soon inactive", true)
	schedule := repo.addSchedule("Sunday service", testNow.AddDate(0, 0, 7))

	svc := newTestService(t, repo)
	plan, err := svc.Plan(context.Background(), []uuid.UUID{schedule.ID}, nil)
	require.NoError(t, err)
	require.Len(t, plan.Suggestions, 1)

	// Deactivated between planning and commit.
	repo.users[0].IsActive = false

	result, err := svc.Apply(context.Background(), plan.Suggestions)
	require.NoError(t, err)
	assert.Zero(t, result.AssignmentsCreated)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], reasonInactiveVolunteer)
	assert.Contains(t, result.Errors[0], user.Name)
	assert.Empty(t, repo.assignments)
}

func TestValidateUnknownSchedule(t *testing.T) {
	repo := newFakeRepo()
	user := repo.addUser("volunteer", true)
	svc := newTestService(t, repo)

	check, err := svc.Validate(context.Background(), uuid.New(), user.ID)
	require.NoError(t, err)
	assert.False(t, check.Valid)
	assert.Equal(t, reasonScheduleNotFound, check.Reason)
}
