// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"Backend-Feedback/src/database/inmem"
	"Backend-Feedback/src/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TestTimer is a utility for measuring test execution time
type TestTimer struct {
	start time.Time
	name  string
}

func NewTestTimer(name string) *TestTimer {
	return &TestTimer{start: time.Now(), name: name}
}

// Stop stops the timer and prints the duration
func (t *TestTimer) Stop() time.Duration {
	duration := time.Since(t.start)
	fmt.Printf("⏱️  %s took %v\n", t.name, duration)
	return duration
}

// PerformanceAssertion checks if a test meets performance requirements
func PerformanceAssertion(t *testing.T, testName string, duration time.Duration, maxDuration time.Duration) {
	t.Helper()
	if duration > maxDuration {
		t.Errorf("❌ %s performance test failed: took %v, expected less than %v", testName, duration, maxDuration)
	} else {
		t.Logf("✅ %s performance test passed: took %v (under %v limit)", testName, duration, maxDuration)
	}
}

type TestResult struct {
	Name     string
	Duration time.Duration
	Passed   bool
}

// TestSuiteResult collects timings of the subtests of one suite.
type TestSuiteResult struct {
	SuiteName   string
	TotalTests  int
	PassedTests int
	FailedTests int
	TotalTime   time.Duration
	Results     []TestResult
}

func NewTestSuiteResult(suiteName string) *TestSuiteResult {
	return &TestSuiteResult{SuiteName: suiteName}
}

func (tsr *TestSuiteResult) AddResult(result TestResult) {
	tsr.Results = append(tsr.Results, result)
	tsr.TotalTests++
	tsr.TotalTime += result.Duration
	if result.Passed {
		tsr.PassedTests++
	} else {
		tsr.FailedTests++
	}
}

// Track times one subtest and records whether it passed.
func (tsr *TestSuiteResult) Track(t *testing.T, name string) func() {
	timer := NewTestTimer(name)
	return func() {
		tsr.AddResult(TestResult{Name: name, Duration: timer.Stop(), Passed: !t.Failed()})
	}
}

// PrintSummary prints a summary of the test suite results
func (tsr *TestSuiteResult) PrintSummary() {
	fmt.Printf("\n📊 Test Suite Summary: %s\n", tsr.SuiteName)
	fmt.Printf("   Total Tests: %d\n", tsr.TotalTests)
	fmt.Printf("   Passed: %d ✅\n", tsr.PassedTests)
	fmt.Printf("   Failed: %d ❌\n", tsr.FailedTests)
	fmt.Printf("   Total Time: %v\n", tsr.TotalTime)
	for _, result := range tsr.Results {
		status := "✅"
		if !result.Passed {
			status = "❌"
		}
		fmt.Printf("   %s %s: %v\n", status, result.Name, result.Duration)
	}
	fmt.Println()
}

// Clock is a settable time source for services that take a now func.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SeedAccount stores an active account with the given role and returns its session identity.
// The password is not hashed; use the accounts service when login matters.
func SeedAccount(t *testing.T, db *inmem.DB, role models.Role, name string) *models.CurrentUser {
	t.Helper()
	now := time.Now()
	account := &models.Account{
		ID:        primitive.NewObjectID(),
		FullName:  name,
		Email:     strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.edu",
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.InsertAccount(context.Background(), account); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	return &models.CurrentUser{ID: account.ID, Email: account.Email, Role: role}
}

// SampleQuestions covers one yes_no and one star_rating question, both required.
func SampleQuestions() []models.QuestionDto {
	return []models.QuestionDto{
		{ID: "q-recommend", QuestionText: "Would you recommend this course?", Type: models.YesNo, Required: true},
		{ID: "q-rating", QuestionText: "Rate the instructor", Type: models.StarRating, MaxStars: 10, Required: true},
		{ID: "q-comment", QuestionText: "Any comments?", Type: models.Paragraph},
	}
}
