// Package tripmeta extracts whole-trip metadata from the non-day sections of
// a trip document.
package tripmeta

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/goliatone/go-tripdata/internal/domain"
	"github.com/goliatone/go-tripdata/internal/logging"
	"github.com/goliatone/go-tripdata/internal/markdown"
	"github.com/goliatone/go-tripdata/internal/patterns"
	"github.com/goliatone/go-tripdata/pkg/interfaces"
)

// Labels are the case-insensitive heading fragments that locate sections.
type Labels struct {
	Overview  string
	Itinerary string
	DayByDay  string
	Flights   string
	Lodging   string
}

// Options carries the convention values the builder needs.
type Options struct {
	FallbackYear string
	// Year, when set, replaces the year found in the subtitle.
	Year           string
	DefaultSegment string
	BaseSegments   map[string]string
	Labels         Labels
}

// Result is the extracted metadata plus the values the itinerary builder
// consumes.
type Result struct {
	Meta domain.TripMeta
	Year string
	// DayNodes is the content of the day-by-day section.
	DayNodes []ast.Node
}

// Builder extracts TripMeta.
type Builder struct {
	opts   Options
	logger interfaces.Logger
}

// NewBuilder constructs a Builder. A nil logger discards output.
func NewBuilder(opts Options, logger interfaces.Logger) *Builder {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Builder{opts: opts, logger: logger}
}

// Build reads every trip-level field. Missing sections leave their fields
// empty.
func (b *Builder) Build(tree *markdown.Tree) Result {
	subtitle := ""
	if node, ok := tree.FirstHeading(2); ok {
		subtitle = tree.Text(node)
	}

	year := strings.TrimSpace(b.opts.Year)
	if year == "" {
		if found, ok := patterns.ExtractYear(subtitle); ok {
			year = found
		} else {
			year = b.opts.FallbackYear
		}
	}

	title := ""
	if node, ok := tree.FirstHeading(1); ok {
		title = patterns.TitleCase(tree.Text(node))
	}

	overviewNodes, _ := tree.TopLevel(b.opts.Labels.Overview)
	itineraryNodes, found := tree.TopLevel(b.opts.Labels.Itinerary)
	if !found {
		b.logger.Debug("tripmeta.section.missing", "label", b.opts.Labels.Itinerary)
	}
	dayNodes, found := tree.TopLevel(b.opts.Labels.DayByDay)
	if !found {
		b.logger.Debug("tripmeta.section.missing", "label", b.opts.Labels.DayByDay)
	}

	dates, duration := b.dates(tree, itineraryNodes)
	meta := domain.TripMeta{
		Title:                title,
		Subtitle:             subtitle,
		Overview:             paragraphText(tree, overviewNodes),
		Dates:                dates,
		Duration:             duration,
		Flights:              b.flights(tree, itineraryNodes),
		DailySchedule:        b.schedule(tree, itineraryNodes),
		LodgingConfirmations: b.lodging(tree, itineraryNodes),
	}

	b.logger.Debug("tripmeta.built",
		"year", year,
		"schedule_rows", len(meta.DailySchedule),
		"lodging", len(meta.LodgingConfirmations),
	)
	return Result{Meta: meta, Year: year, DayNodes: dayNodes}
}

func paragraphText(tree *markdown.Tree, nodes []ast.Node) string {
	var parts []string
	for _, node := range nodes {
		if markdown.IsParagraph(node) {
			parts = append(parts, tree.Text(node))
		}
	}
	return strings.Join(parts, " ")
}

// schedule reads the body rows of the first table. Segments propagate from
// row to row starting from the default segment.
func (b *Builder) schedule(tree *markdown.Tree, nodes []ast.Node) []domain.DailyScheduleRow {
	rows := []domain.DailyScheduleRow{}
	var table *east.Table
	for _, node := range nodes {
		if candidate, ok := node.(*east.Table); ok {
			table = candidate
			break
		}
	}
	if table == nil {
		return rows
	}

	prev := b.opts.DefaultSegment
	for child := table.FirstChild(); child != nil; child = child.NextSibling() {
		row, ok := child.(*east.TableRow)
		if !ok {
			continue
		}
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, tree.Text(cell))
		}
		base := cellAt(cells, 1)
		segment := patterns.SegmentForBase(base, prev, b.opts.BaseSegments)
		prev = segment
		rows = append(rows, domain.DailyScheduleRow{
			Date:      cellAt(cells, 0),
			Base:      base,
			Logistics: cellAt(cells, 2),
			SegmentID: segment,
		})
	}
	return rows
}

func cellAt(cells []string, index int) string {
	if index < len(cells) {
		return cells[index]
	}
	return ""
}

func (b *Builder) dates(tree *markdown.Tree, nodes []ast.Node) (string, string) {
	for _, node := range nodes {
		if !markdown.IsParagraph(node) {
			continue
		}
		text := tree.Text(node)
		if !strings.HasPrefix(text, "Dates:") {
			continue
		}
		dates, duration, _ := patterns.ParseDates(text)
		return dates, duration
	}
	return "", ""
}

// flights reads the first list after the flights sub-heading, stopping at
// the next heading of any level.
func (b *Builder) flights(tree *markdown.Tree, nodes []ast.Node) domain.FlightInfo {
	var info domain.FlightInfo
	start := headingIndex(tree, nodes, 2, b.opts.Labels.Flights)
	if start < 0 {
		return info
	}

	for _, node := range nodes[start+1:] {
		if node.Kind() == ast.KindHeading {
			break
		}
		list, ok := node.(*ast.List)
		if !ok {
			continue
		}
		for _, text := range listItems(tree, list) {
			if value, ok := patterns.ListValue(text, "Airline:"); ok {
				info.Airline = value
			} else if value, ok := patterns.ListValue(text, "Confirmation:"); ok {
				info.Confirmation = value
			} else if value, ok := patterns.ListValue(text, "Outbound:"); ok {
				info.Outbound = patterns.ParseFlight(value)
			} else if value, ok := patterns.ListValue(text, "Return:"); ok {
				info.Return = patterns.ParseFlight(value)
			}
		}
		break
	}
	return info
}

// lodging groups the level-3 headings under the lodging sub-heading into
// confirmation blocks titled `<dates> — <name>`.
func (b *Builder) lodging(tree *markdown.Tree, nodes []ast.Node) []domain.LodgingConfirmation {
	out := []domain.LodgingConfirmation{}
	section, ok := tree.SubSection(nodes, 2, b.opts.Labels.Lodging)
	if !ok {
		return out
	}

	for _, block := range tree.SplitByHeading(section, 3) {
		dates, name, _ := strings.Cut(block.Heading, patterns.TimeBlockSeparator)
		entry := domain.LodgingConfirmation{
			Name:          name,
			Dates:         dates,
			Confirmations: []string{},
		}
		for _, child := range block.Children {
			list, ok := child.(*ast.List)
			if !ok {
				continue
			}
			for _, text := range listItems(tree, list) {
				if value, ok := patterns.ListValue(text, "Address:"); ok {
					entry.Address = value
				} else if value, ok := patterns.ListValue(text, "Confirmation:"); ok {
					entry.Confirmations = append(entry.Confirmations, value)
				}
			}
		}
		out = append(out, entry)
	}
	return out
}

func headingIndex(tree *markdown.Tree, nodes []ast.Node, level int, label string) int {
	needle := strings.ToLower(label)
	for i, node := range nodes {
		if markdown.IsHeading(node, level) && strings.Contains(strings.ToLower(tree.Text(node)), needle) {
			return i
		}
	}
	return -1
}

func listItems(tree *markdown.Tree, list *ast.List) []string {
	var items []string
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		items = append(items, tree.Text(item))
	}
	return items
}
