// Package taxonomy derives the two-level channel/format catalog from
// free-text channel and format fields on content tasks and items.
//
// Channels and formats are ad-hoc strings typed by users. The builder
// deduplicates them case-insensitively, keeps the first-seen casing for
// display, merges in a static preset catalog so suggestions are never empty,
// and ranks observed channel/format pairs into quick-combo shortcuts.
package taxonomy

import (
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	// maxDataCombos caps quick-combos taken from observed data.
	maxDataCombos = 10
	// maxCombos caps the total quick-combo list after preset backfill.
	maxCombos = 12
	// backfillPerChannel limits how many preset formats per channel are
	// used to pad the quick-combo list.
	backfillPerChannel = 2
)

// Usage is one observed channel/format pair from a task or item.
type Usage struct {
	Channel string
	Format  string
}

// Combo is a suggested channel/format pairing surfaced as a one-click shortcut.
type Combo struct {
	Channel string `json:"channel"`
	Format  string `json:"format"`
}

// Taxonomy is the derived catalog of channels, their formats, and ranked combos.
type Taxonomy struct {
	Channels         []string            `json:"channels"`
	FormatsByChannel map[string][]string `json:"formats_by_channel"`
	QuickCombos      []Combo             `json:"quick_combos"`
}

// preset is a built-in channel with its starter formats.
type preset struct {
	channel string
	formats []string
}

// presets seed the catalog before any real data exists. Order matters for
// quick-combo backfill.
var presets = []preset{
	{"Website", []string{"Landing Page", "Blogartikel", "Case Study"}},
	{"LinkedIn", []string{"Post", "Karussell"}},
	{"Instagram", []string{"Reel", "Story", "Post"}},
	{"E-Mail", []string{"Newsletter", "Kampagne"}},
	{"YouTube", []string{"Video", "Short"}},
	{"Print", []string{"Flyer", "Broschüre"}},
}

type channelEntry struct {
	display string
	formats map[string]string // lowercased format -> first-seen display
}

type comboStat struct {
	combo Combo
	count int
	seq   int // insertion order, breaks count ties
}

// Build derives the taxonomy from the given usages.
//
// Normalization: values are trimmed; a pair with a blank channel is ignored
// entirely, a pair with a blank format still registers its channel. Channel
// and format identity is case-insensitive with first-seen casing kept for
// display; the presets are merged first, so preset casing wins for preset
// channels. The result is always well-formed: with no input it contains
// exactly the presets.
func Build(usages []Usage) *Taxonomy {
	channels := make(map[string]*channelEntry)

	// Presets first - they define canonical casing and guarantee
	// non-empty suggestions.
	for _, p := range presets {
		entry := &channelEntry{
			display: p.channel,
			formats: make(map[string]string, len(p.formats)),
		}
		for _, f := range p.formats {
			entry.formats[strings.ToLower(f)] = f
		}
		channels[strings.ToLower(p.channel)] = entry
	}

	// Observed pairs, counted for quick-combo ranking.
	stats := make(map[string]*comboStat)
	var order []string

	for _, u := range usages {
		ch := strings.TrimSpace(u.Channel)
		if ch == "" {
			continue
		}
		chKey := strings.ToLower(ch)

		entry, ok := channels[chKey]
		if !ok {
			entry = &channelEntry{
				display: ch,
				formats: make(map[string]string),
			}
			channels[chKey] = entry
		}

		fm := strings.TrimSpace(u.Format)
		if fm == "" {
			continue
		}
		fmKey := strings.ToLower(fm)

		if _, ok := entry.formats[fmKey]; !ok {
			entry.formats[fmKey] = fm
		}

		pairKey := chKey + "\x00" + fmKey
		stat, ok := stats[pairKey]
		if !ok {
			stat = &comboStat{
				combo: Combo{Channel: entry.display, Format: entry.formats[fmKey]},
				seq:   len(order),
			}
			stats[pairKey] = stat
			order = append(order, pairKey)
		}
		stat.count++
	}

	return &Taxonomy{
		Channels:         sortedChannels(channels),
		FormatsByChannel: sortedFormats(channels),
		QuickCombos:      rankCombos(stats, order),
	}
}

// rankCombos orders observed pairs by descending count (ties by insertion
// order), caps them at maxDataCombos, then pads with preset pairs up to
// maxCombos, skipping case-insensitive duplicates.
func rankCombos(stats map[string]*comboStat, order []string) []Combo {
	ranked := make([]*comboStat, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, stats[key])
	}
	// Insertion sort keeps this simple and stable for small n; the data cap
	// makes n irrelevant for performance.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && less(ranked[j], ranked[j-1]); j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	combos := make([]Combo, 0, maxCombos)
	seen := make(map[string]bool, maxCombos)
	for _, stat := range ranked {
		if len(combos) == maxDataCombos {
			break
		}
		key := comboKey(stat.combo)
		if seen[key] {
			continue
		}
		seen[key] = true
		combos = append(combos, stat.combo)
	}

	// Backfill from presets until the list holds maxCombos entries.
	for _, p := range presets {
		taken := 0
		for _, f := range p.formats {
			if len(combos) == maxCombos {
				return combos
			}
			if taken == backfillPerChannel {
				break
			}
			c := Combo{Channel: p.channel, Format: f}
			key := comboKey(c)
			if seen[key] {
				continue
			}
			seen[key] = true
			combos = append(combos, c)
			taken++
		}
	}

	return combos
}

func less(a, b *comboStat) bool {
	if a.count != b.count {
		return a.count > b.count
	}
	return a.seq < b.seq
}

func comboKey(c Combo) string {
	return strings.ToLower(c.Channel) + "\x00" + strings.ToLower(c.Format)
}

func sortedChannels(channels map[string]*channelEntry) []string {
	out := make([]string, 0, len(channels))
	for _, entry := range channels {
		out = append(out, entry.display)
	}
	newCollator().SortStrings(out)
	return out
}

func sortedFormats(channels map[string]*channelEntry) map[string][]string {
	c := newCollator()
	out := make(map[string][]string, len(channels))
	for _, entry := range channels {
		formats := make([]string, 0, len(entry.formats))
		for _, display := range entry.formats {
			formats = append(formats, display)
		}
		c.SortStrings(formats)
		out[entry.display] = formats
	}
	return out
}

// newCollator returns a German-locale collator, matching the dashboard's
// primary audience.
func newCollator() *collate.Collator {
	return collate.New(language.German)
}

// PresetChannelCount is the number of built-in channels; the derived
// channel list can never be shorter than this.
func PresetChannelCount() int {
	return len(presets)
}
