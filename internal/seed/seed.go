// Package seed generates demo users, tasks and comments with the value
// distributions of the production data set, so reports over seeded data
// exercise every branch of the formatter.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/withoutfanfare/developer-test/internal/domain"
	"github.com/withoutfanfare/developer-test/internal/store"
)

// Categories assigned to seeded tasks.
var Categories = []string{
	"Development", "Design", "Testing", "Documentation",
	"Bug Fix", "Research", "Meeting", "Review",
}

var (
	firstNames = []string{
		"Ada", "Grace", "Alan", "Barbara", "Edsger", "Margaret", "Dennis", "Frances",
		"Ken", "Radia", "Linus", "Katherine", "Donald", "Hedy", "John", "Sophie",
	}
	lastNames = []string{
		"Lovelace", "Hopper", "Turing", "Liskov", "Dijkstra", "Hamilton", "Ritchie", "Allen",
		"Thompson", "Perlman", "Torvalds", "Johnson", "Knuth", "Lamarr", "Backus", "Wilson",
	}
	words = []string{
		"update", "review", "migrate", "schema", "dashboard", "release", "invoice", "client",
		"billing", "cache", "report", "sprint", "deploy", "audit", "search", "export",
		"import", "onboarding", "feedback", "metrics", "latency", "backlog", "mobile", "api",
	}
	companies    = []string{"Acme Ltd", "Globex", "Initech", "Umbrella", "Hooli", "Stark Industries"}
	difficulties = []string{"easy", "medium", "hard"}
	environments = []string{"development", "staging", "production"}
	extensions   = []string{"pdf", "png", "docx"}
)

// Options sizes a seeding run.
type Options struct {
	Users    int
	Tasks    int
	Comments int
}

// Validate rejects negative counts and tasks or comments without parents.
func (o Options) Validate() error {
	if o.Users < 0 || o.Tasks < 0 || o.Comments < 0 {
		return errors.New("counts cannot be negative")
	}
	if o.Tasks > 0 && o.Users == 0 {
		return errors.New("tasks need at least one user")
	}
	if o.Comments > 0 && o.Tasks == 0 {
		return errors.New("comments need at least one task")
	}
	return nil
}

// Result counts the rows written.
type Result struct {
	Users    int
	Tasks    int
	Comments int
}

// Seeder writes random but reproducible demo data.
type Seeder struct {
	rng    *rand.Rand
	now    func() time.Time
	logger *slog.Logger
}

// New creates a Seeder. The same seed and clock produce the same rows.
func New(seed uint64, now func() time.Time, logger *slog.Logger) *Seeder {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		now:    now,
		logger: logger.With(slog.String("component", "seeder")),
	}
}

// Run writes opts.Users users, then tasks owned by them, then comments on
// those tasks. It stops at the first write error.
func (s *Seeder) Run(ctx context.Context, w store.TaskWriter, opts Options) (Result, error) {
	var res Result
	if err := opts.Validate(); err != nil {
		return res, err
	}
	now := s.now().UTC()

	userIDs := make([]int64, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		u := s.user(i, now)
		if err := w.CreateUser(ctx, &u); err != nil {
			return res, fmt.Errorf("seed user %d: %w", i, err)
		}
		userIDs = append(userIDs, u.ID)
		res.Users++
	}

	taskIDs := make([]int64, 0, opts.Tasks)
	for i := 0; i < opts.Tasks; i++ {
		t := s.task(userIDs, now)
		if err := w.CreateTask(ctx, &t); err != nil {
			return res, fmt.Errorf("seed task %d: %w", i, err)
		}
		taskIDs = append(taskIDs, t.ID)
		res.Tasks++
	}

	for i := 0; i < opts.Comments; i++ {
		c := s.comment(taskIDs, userIDs, now)
		if err := w.CreateComment(ctx, &c); err != nil {
			return res, fmt.Errorf("seed comment %d: %w", i, err)
		}
		res.Comments++
	}

	s.logger.Info("seed data written",
		slog.Int("users", res.Users),
		slog.Int("tasks", res.Tasks),
		slog.Int("comments", res.Comments))
	return res, nil
}

func (s *Seeder) user(i int, now time.Time) domain.User {
	first := pick(s.rng, firstNames)
	last := pick(s.rng, lastNames)
	return domain.User{
		Name:      first + " " + last,
		Email:     fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
		CreatedAt: s.between(now.AddDate(-1, 0, 0), now),
	}
}

func (s *Seeder) task(userIDs []int64, now time.Time) domain.Task {
	created := s.between(now.AddDate(0, -6, 0), now)
	category := pick(s.rng, Categories)
	description := s.paragraph(3)

	t := domain.Task{
		Title:       s.sentence(4),
		Description: &description,
		Status:      pick(s.rng, domain.TaskStatuses),
		Priority:    pick(s.rng, domain.TaskPriorities),
		OwnerID:     pick(s.rng, userIDs),
		Category:    &category,
		CreatedAt:   created,
		UpdatedAt:   created,
	}
	if s.chance(0.7) {
		assignee := pick(s.rng, userIDs)
		t.AssigneeID = &assignee
	}
	if s.chance(0.6) {
		due := s.between(now, now.AddDate(0, 3, 0))
		t.DueDate = &due
	}
	if s.chance(0.4) {
		t.Metadata = s.metadata()
	}
	if s.chance(0.7) {
		h := s.hours(0.5, 40)
		t.EstimatedHours = &h
	}
	if s.chance(0.5) {
		h := s.hours(0.5, 50)
		t.ActualHours = &h
	}
	if s.chance(0.3) {
		notes := s.paragraph(2)
		t.Notes = &notes
	}
	return t
}

func (s *Seeder) comment(taskIDs, userIDs []int64, now time.Time) domain.TaskComment {
	content := s.paragraph(1 + s.rng.IntN(4))
	c := domain.TaskComment{
		TaskID:    pick(s.rng, taskIDs),
		AuthorID:  pick(s.rng, userIDs),
		Content:   &content,
		CreatedAt: s.between(now.AddDate(0, -3, 0), now),
	}
	if s.chance(0.2) {
		n := 1 + s.rng.IntN(2)
		for _, i := range s.rng.Perm(len(extensions))[:n] {
			c.Attachments = append(c.Attachments, domain.Attachment{
				Filename: pick(s.rng, words) + "." + extensions[i],
				Size:     int64(1000 + s.rng.IntN(199000)),
			})
		}
	}
	return c
}

// metadata picks one to three of the known keys.
func (s *Seeder) metadata() map[string]any {
	all := []func(m map[string]any){
		func(m map[string]any) { m["client"] = pick(s.rng, companies) },
		func(m map[string]any) { m["project"] = pick(s.rng, words) + " " + pick(s.rng, words) },
		func(m map[string]any) {
			m["tags"] = []any{pick(s.rng, words), pick(s.rng, words), pick(s.rng, words)}
		},
		func(m map[string]any) { m["difficulty"] = pick(s.rng, difficulties) },
		func(m map[string]any) { m["environment"] = pick(s.rng, environments) },
	}
	m := make(map[string]any)
	n := 1 + s.rng.IntN(3)
	for _, i := range s.rng.Perm(len(all))[:n] {
		all[i](m)
	}
	return m
}

func (s *Seeder) chance(p float64) bool {
	return s.rng.Float64() < p
}

// between returns a second-precision instant in [from, to).
func (s *Seeder) between(from, to time.Time) time.Time {
	span := int64(to.Sub(from) / time.Second)
	if span <= 0 {
		return from.Truncate(time.Second)
	}
	return from.Add(time.Duration(s.rng.Int64N(span)) * time.Second).Truncate(time.Second)
}

func (s *Seeder) hours(lo, hi float64) float64 {
	return domain.Round2(lo + s.rng.Float64()*(hi-lo))
}

func (s *Seeder) sentence(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = pick(s.rng, words)
	}
	out := strings.Join(parts, " ")
	return strings.ToUpper(out[:1]) + out[1:]
}

func (s *Seeder) paragraph(sentences int) string {
	parts := make([]string, sentences)
	for i := range parts {
		parts[i] = s.sentence(5+s.rng.IntN(6)) + "."
	}
	return strings.Join(parts, " ")
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}
