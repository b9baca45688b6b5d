package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/javiermolinar/horario/internal/present"
	"github.com/javiermolinar/horario/internal/schedule"
)

// LongBlockHours is the length from which a block is reported as long.
const LongBlockHours = 3

const evaluatorSystemPrompt = `You are a school timetable reviewer. Output ONLY the exact format shown - no markdown, no extra text. Be extremely concise.`

const userPromptTemplate = `Review this school week and output EXACTLY this format (no markdown, no code blocks):

LOAD: One sentence about how teaching hours are spread across the days.
⚠️  GAPS: Blocks without a teacher or room, by day and time.
📏 LONG BLOCKS: Blocks of %dh or more that may tire the group.
📌 PINNED: Whether pinned blocks constrain the week.

SUGGESTIONS:
➜  First specific change.
➜  Second specific change.

Visible hours: %d:00-%d:00

Weekly Data:
%s

Rules:
- Use the exact emoji prefixes shown (⚠️, 📏, 📌, ➜)
- Keep each line under 70 characters
- Refer to days and times from the data
- If no issue exists for a category, omit that line
- Output plain text only, no markdown formatting`

const findingsPromptTemplate = `List the problems in this school week as JSON with this shape:
{"summary": "one sentence", "findings": [{"day": 1, "hour": 9, "note": "short note"}]}
Days are 1=Monday..7=Sunday. Use an empty list when there is nothing to report.

Weekly Data:
%s`

// ErrNoEntries is returned when there is nothing to review.
var ErrNoEntries = errors.New("no schedule entries to review")

// WeekStats summarizes a week before it is sent to the model.
type WeekStats struct {
	HoursPerDay map[int]int
	Blocks      int
	LongBlocks  int
	NoTeacher   int
	NoRoom      int
	Pinned      int
	Outside     int // blocks that start outside the visible window
}

// Finding points at one problem in the week.
type Finding struct {
	Day  int    `json:"day"`
	Hour int    `json:"hour"`
	Note string `json:"note"`
}

// Review is the structured answer to a findings request.
type Review struct {
	Summary  string    `json:"summary"`
	Findings []Finding `json:"findings"`
}

// Evaluator asks an LLM to comment on a schedule week.
type Evaluator struct {
	client Client
}

// NewEvaluator creates a new Evaluator with the given LLM client.
func NewEvaluator(client Client) *Evaluator {
	return &Evaluator{client: client}
}

// EvaluateWeek sends the week's entries to the LLM and returns its plain-text review.
func (e *Evaluator) EvaluateWeek(ctx context.Context, entries []schedule.Entry, w schedule.Window) (string, error) {
	if len(entries) == 0 {
		return "", ErrNoEntries
	}

	prompt := fmt.Sprintf(userPromptTemplate, LongBlockHours, w.FirstHour, w.LastHour+1, formatWeekData(entries, w))
	return e.client.Chat(ctx, []Message{
		system(evaluatorSystemPrompt),
		user(prompt),
	})
}

// Findings asks the LLM for a structured list of problems in the week.
// Findings on days outside the window are dropped.
func (e *Evaluator) Findings(ctx context.Context, entries []schedule.Entry, w schedule.Window) (*Review, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	var review Review
	err := e.client.ChatJSON(ctx, []Message{
		system("You are a school timetable reviewer. Reply with JSON only."),
		user(fmt.Sprintf(findingsPromptTemplate, formatWeekData(entries, w))),
	}, &review)
	if err != nil {
		return nil, err
	}

	kept := review.Findings[:0]
	for _, f := range review.Findings {
		if w.ContainsDay(f.Day) {
			kept = append(kept, f)
		}
	}
	review.Findings = kept
	return &review, nil
}

// Stats computes the summary sent along with the week.
func Stats(entries []schedule.Entry, w schedule.Window) WeekStats {
	stats := WeekStats{HoursPerDay: make(map[int]int)}
	for _, e := range entries {
		stats.Blocks++
		stats.HoursPerDay[e.Day] += e.LengthHours
		if e.LengthHours >= LongBlockHours {
			stats.LongBlocks++
		}
		if !e.HasTeacher() {
			stats.NoTeacher++
		}
		if !e.HasRoom() {
			stats.NoRoom++
		}
		if e.Pinned {
			stats.Pinned++
		}
		if !w.ContainsDay(e.Day) || !w.ContainsHour(e.StartHour) {
			stats.Outside++
		}
	}
	return stats
}

// formatWeekData lists the week day by day in chronological order.
func formatWeekData(entries []schedule.Entry, w schedule.Window) string {
	var sb strings.Builder

	stats := Stats(entries, w)
	fmt.Fprintf(&sb, "Blocks: %d (long: %d, no teacher: %d, no room: %d, pinned: %d, outside hours: %d)\n",
		stats.Blocks, stats.LongBlocks, stats.NoTeacher, stats.NoRoom, stats.Pinned, stats.Outside)

	currentDay := 0
	for _, e := range schedule.Chronological(entries) {
		if e.Day != currentDay {
			fmt.Fprintf(&sb, "\n%s (%dh)\n", present.DayName(e.Day), stats.HoursPerDay[e.Day])
			currentDay = e.Day
		}

		pin := "  "
		if e.Pinned {
			pin = present.PinMark
		}
		fmt.Fprintf(&sb, "  %s %s  %s  %s  %s  %s\n",
			pin,
			present.TimeRange(e),
			e.CourseName,
			e.GroupName,
			present.TeacherLabel(e),
			present.RoomLabel(e))
	}

	return sb.String()
}
