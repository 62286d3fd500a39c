// Package itinerary assembles TripDay records from the day-by-day section of
// a trip document.
package itinerary

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-tripdata/internal/domain"
	"github.com/goliatone/go-tripdata/internal/logging"
	"github.com/goliatone/go-tripdata/internal/markdown"
	"github.com/goliatone/go-tripdata/internal/patterns"
	"github.com/goliatone/go-tripdata/internal/resolve"
	"github.com/goliatone/go-tripdata/pkg/interfaces"
)

// DayHeadingLevel is the heading depth that opens a day.
const DayHeadingLevel = 2

// Options carries the convention values the builder needs.
type Options struct {
	DocumentPath    string
	Year            string
	DefaultSegment  string
	SubgroupMarkers []string
	TravelModes     []string
}

// Builder turns day sections into TripDay records.
type Builder struct {
	resolver  *resolve.Resolver
	subgroups *patterns.SubgroupMatcher
	travel    *patterns.TravelMatcher
	opts      Options
	logger    interfaces.Logger
}

// NewBuilder constructs a Builder. A nil logger discards output.
func NewBuilder(resolver *resolve.Resolver, opts Options, logger interfaces.Logger) *Builder {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Builder{
		resolver:  resolver,
		subgroups: patterns.NewSubgroupMatcher(opts.SubgroupMarkers),
		travel:    patterns.NewTravelMatcher(opts.TravelModes),
		opts:      opts,
		logger:    logger,
	}
}

// Build walks the day-by-day nodes. Day N takes its segment from row N of
// schedule, or the default segment when the table is shorter. A day heading
// that does not parse fails the whole build.
func (b *Builder) Build(tree *markdown.Tree, nodes []ast.Node, schedule []domain.DailyScheduleRow) ([]domain.TripDay, error) {
	sections := tree.SplitByHeading(nodes, DayHeadingLevel)
	days := make([]domain.TripDay, 0, len(sections))

	for i, section := range sections {
		number := i + 1
		heading, err := patterns.ParseDayHeading(section.Heading, b.opts.Year)
		if err != nil {
			return nil, fmt.Errorf("day %d: %w", number, err)
		}

		segment := b.opts.DefaultSegment
		if i < len(schedule) {
			segment = schedule[i].SegmentID
		}

		logger := logging.WithDayContext(b.logger, b.opts.DocumentPath, number, heading.Date)
		w := &dayWalker{builder: b, tree: tree, logger: logger, activities: []domain.Activity{}}
		for _, node := range section.Children {
			w.step(node)
		}
		w.flush()

		days = append(days, domain.TripDay{
			Day:        number,
			Date:       heading.Date,
			DayOfWeek:  heading.DayOfWeek,
			Title:      heading.Title,
			Summary:    strings.Join(w.summary, " "),
			SegmentID:  segment,
			Activities: w.activities,
		})
		logger.Debug("itinerary.day.built", "activities", len(w.activities), "segment", segment)
	}
	return days, nil
}

type dayState int

const (
	// beforeFirstActivity also covers the gap after a travel line closed
	// the previous activity; paragraphs there extend the summary.
	beforeFirstActivity dayState = iota
	inActivity
)

type openActivity struct {
	time        string
	name        string
	subgroup    string
	description []ast.Node
}

// dayWalker is the per-day state machine.
type dayWalker struct {
	builder    *Builder
	tree       *markdown.Tree
	logger     interfaces.Logger
	state      dayState
	current    openActivity
	summary    []string
	activities []domain.Activity
}

func (w *dayWalker) step(node ast.Node) {
	if block, ok := w.timeBlock(node); ok {
		w.flush()
		name, subgroup := w.builder.subgroups.Extract(block.Name)
		w.current = openActivity{time: block.Time, name: name, subgroup: subgroup}
		w.state = inActivity
		return
	}

	if leg, ok := w.travelLine(node); ok {
		if w.state != inActivity {
			w.logger.Debug("itinerary.travel.dropped", "line", w.tree.Text(node))
			return
		}
		w.flush()
		w.activities[len(w.activities)-1].TravelAfter = &leg
		return
	}

	switch w.state {
	case inActivity:
		w.current.description = append(w.current.description, node)
	case beforeFirstActivity:
		if markdown.IsParagraph(node) {
			w.summary = append(w.summary, w.tree.Text(node))
		}
	}
}

func (w *dayWalker) timeBlock(node ast.Node) (patterns.TimeBlock, bool) {
	if !w.tree.IsStrongOnly(node) {
		return patterns.TimeBlock{}, false
	}
	return patterns.ParseTimeBlock(w.tree.Text(node))
}

func (w *dayWalker) travelLine(node ast.Node) (domain.TravelLeg, bool) {
	if !w.tree.IsEmphasisOnly(node) {
		return domain.TravelLeg{}, false
	}
	return w.builder.travel.Match(w.tree.Text(node))
}

// flush closes the open activity, if any, and appends it to the day.
func (w *dayWalker) flush() {
	if w.state != inActivity {
		return
	}
	parts := make([]string, 0, len(w.current.description))
	for _, node := range w.current.description {
		parts = append(parts, w.tree.Text(node))
	}
	description := strings.Join(parts, " ")

	w.activities = append(w.activities, domain.Activity{
		Time:        w.current.time,
		Name:        w.current.name,
		Description: description,
		LocationIDs: w.builder.resolver.Resolve(w.tree, w.current.name, description, w.current.description),
		Subgroup:    w.current.subgroup,
	})
	w.current = openActivity{}
	w.state = beforeFirstActivity
}
