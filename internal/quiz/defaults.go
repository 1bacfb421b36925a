// Pulseplan Genome - Taste Genome Engine
// Copyright 2026 Pulseplan Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pulseplan/genome

package quiz

import (
	"github.com/pulseplan/genome/internal/genome"
)

// DefaultBank returns the built-in question bank: 18 best/worst questions
// (6 categories, 3 each) plus honing templates for commonly confused
// designation pairs. Deployments override it with a YAML bank file.
func DefaultBank(catalog *genome.Catalog) (*Bank, error) {
	return NewBank(defaultPool(), defaultHoning(), catalog)
}

func defaultPool() []Question {
	return []Question{
		// aesthetic
		{
			ID:       "bw-01",
			Prompt:   "A blank feed slot opens up tomorrow. What fills it?",
			Category: "aesthetic",
			Cards: []Card{
				{ID: "bw-01-a", Label: "A concept piece nobody asked for", Weights: map[genome.Designation]float64{"V-2": 0.7, "S-0": 0.3}},
				{ID: "bw-01-b", Label: "Something quiet and deliberate", Weights: map[genome.Designation]float64{"L-3": 0.7, "H-6": 0.3}},
				{ID: "bw-01-c", Label: "A curated roundup of the week", Weights: map[genome.Designation]float64{"C-4": 0.7, "R-10": 0.3}},
				{ID: "bw-01-d", Label: "Whatever breaks the pattern", Weights: map[genome.Designation]float64{"D-8": 0.7, "P-7": 0.3}},
			},
		},
		{
			ID:       "bw-02",
			Prompt:   "Which compliment lands hardest?",
			Category: "aesthetic",
			Cards: []Card{
				{ID: "bw-02-a", Label: "\"I've never seen anything like this\"", Weights: map[genome.Designation]float64{"V-2": 0.6, "F-9": 0.4}},
				{ID: "bw-02-b", Label: "\"Every detail is exactly right\"", Weights: map[genome.Designation]float64{"T-1": 0.8, "C-4": 0.2}},
				{ID: "bw-02-c", Label: "\"This feels completely honest\"", Weights: map[genome.Designation]float64{"N-5": 0.7, "R-10": 0.3}},
				{ID: "bw-02-d", Label: "\"This made me uncomfortable, in a good way\"", Weights: map[genome.Designation]float64{"P-7": 0.8, "D-8": 0.2}},
			},
		},
		{
			ID:       "bw-03",
			Prompt:   "Your visual style is best described as…",
			Category: "aesthetic",
			Cards: []Card{
				{ID: "bw-03-a", Label: "Composed, balanced, easy to live with", Weights: map[genome.Designation]float64{"H-6": 0.8, "L-3": 0.2}},
				{ID: "bw-03-b", Label: "Clean references, clear lineage", Weights: map[genome.Designation]float64{"C-4": 0.8, "S-0": 0.2}},
				{ID: "bw-03-c", Label: "Raw, unfiltered, found not made", Weights: map[genome.Designation]float64{"N-5": 0.8, "D-8": 0.2}},
				{ID: "bw-03-d", Label: "Deliberately hard to place", Weights: map[genome.Designation]float64{"F-9": 0.6, "V-2": 0.4}},
			},
		},
		// narrative
		{
			ID:       "bw-04",
			Prompt:   "A story is working when…",
			Category: "narrative",
			Cards: []Card{
				{ID: "bw-04-a", Label: "People see themselves in it", Weights: map[genome.Designation]float64{"S-0": 0.8, "H-6": 0.2}},
				{ID: "bw-04-b", Label: "It predicts where things are going", Weights: map[genome.Designation]float64{"F-9": 0.8, "V-2": 0.2}},
				{ID: "bw-04-c", Label: "It documents what actually happened", Weights: map[genome.Designation]float64{"R-10": 0.8, "N-5": 0.2}},
				{ID: "bw-04-d", Label: "It picks a fight worth having", Weights: map[genome.Designation]float64{"P-7": 0.7, "D-8": 0.3}},
			},
		},
		{
			ID:       "bw-05",
			Prompt:   "Pick the opening line you'd actually write.",
			Category: "narrative",
			Cards: []Card{
				{ID: "bw-05-a", Label: "\"Let me tell you about the day everything changed.\"", Weights: map[genome.Designation]float64{"S-0": 0.7, "L-3": 0.3}},
				{ID: "bw-05-b", Label: "\"Here are the numbers, and they don't lie.\"", Weights: map[genome.Designation]float64{"R-10": 0.7, "T-1": 0.3}},
				{ID: "bw-05-c", Label: "\"In five years none of this will exist.\"", Weights: map[genome.Designation]float64{"F-9": 0.7, "D-8": 0.3}},
				{ID: "bw-05-d", Label: "\"I found this and couldn't stop thinking about it.\"", Weights: map[genome.Designation]float64{"C-4": 0.6, "N-5": 0.4}},
			},
		},
		{
			ID:       "bw-06",
			Prompt:   "The ending you reach for:",
			Category: "narrative",
			Cards: []Card{
				{ID: "bw-06-a", Label: "Resolution — every thread tied", Weights: map[genome.Designation]float64{"H-6": 0.7, "T-1": 0.3}},
				{ID: "bw-06-b", Label: "A question the audience has to carry home", Weights: map[genome.Designation]float64{"V-2": 0.6, "P-7": 0.4}},
				{ID: "bw-06-c", Label: "A single image that says it all", Weights: map[genome.Designation]float64{"L-3": 0.8, "S-0": 0.2}},
				{ID: "bw-06-d", Label: "No ending — the work keeps moving", Weights: map[genome.Designation]float64{"NULL": 0.6, "F-9": 0.4}},
			},
		},
		// process
		{
			ID:       "bw-07",
			Prompt:   "Your workspace, honestly:",
			Category: "process",
			Cards: []Card{
				{ID: "bw-07-a", Label: "A calibrated rig with named presets", Weights: map[genome.Designation]float64{"T-1": 0.8, "R-10": 0.2}},
				{ID: "bw-07-b", Label: "Reference boards floor to ceiling", Weights: map[genome.Designation]float64{"C-4": 0.7, "V-2": 0.3}},
				{ID: "bw-07-c", Label: "Wherever the light is good right now", Weights: map[genome.Designation]float64{"N-5": 0.8, "L-3": 0.2}},
				{ID: "bw-07-d", Label: "Three half-dismantled experiments", Weights: map[genome.Designation]float64{"D-8": 0.6, "F-9": 0.4}},
			},
		},
		{
			ID:       "bw-08",
			Prompt:   "A deadline is 48 hours out and the piece isn't right. You…",
			Category: "process",
			Cards: []Card{
				{ID: "bw-08-a", Label: "Debug it — the flaw is findable", Weights: map[genome.Designation]float64{"T-1": 0.7, "R-10": 0.3}},
				{ID: "bw-08-b", Label: "Strip it back to the one true thing", Weights: map[genome.Designation]float64{"L-3": 0.6, "N-5": 0.4}},
				{ID: "bw-08-c", Label: "Ship the wrong version loudly, on purpose", Weights: map[genome.Designation]float64{"P-7": 0.7, "NULL": 0.3}},
				{ID: "bw-08-d", Label: "Start over from a stranger idea", Weights: map[genome.Designation]float64{"V-2": 0.7, "D-8": 0.3}},
			},
		},
		{
			ID:       "bw-09",
			Prompt:   "What does \"done\" mean?",
			Category: "process",
			Cards: []Card{
				{ID: "bw-09-a", Label: "It passes every check I have", Weights: map[genome.Designation]float64{"T-1": 0.8, "H-6": 0.2}},
				{ID: "bw-09-b", Label: "It says what I meant, no more", Weights: map[genome.Designation]float64{"L-3": 0.7, "S-0": 0.3}},
				{ID: "bw-09-c", Label: "The deadline arrived", Weights: map[genome.Designation]float64{"R-10": 0.7, "NULL": 0.3}},
				{ID: "bw-09-d", Label: "Done is a trap — iterate in public", Weights: map[genome.Designation]float64{"F-9": 0.6, "D-8": 0.4}},
			},
		},
		// audience
		{
			ID:       "bw-10",
			Prompt:   "The comment section you secretly want:",
			Category: "audience",
			Cards: []Card{
				{ID: "bw-10-a", Label: "\"This is exactly what I needed today\"", Weights: map[genome.Designation]float64{"H-6": 0.8, "S-0": 0.2}},
				{ID: "bw-10-b", Label: "An argument that outlives the post", Weights: map[genome.Designation]float64{"P-7": 0.8, "D-8": 0.2}},
				{ID: "bw-10-c", Label: "\"Source? Tutorial? Settings?\"", Weights: map[genome.Designation]float64{"T-1": 0.6, "C-4": 0.4}},
				{ID: "bw-10-d", Label: "Quiet saves, no comments at all", Weights: map[genome.Designation]float64{"L-3": 0.6, "NULL": 0.4}},
			},
		},
		{
			ID:       "bw-11",
			Prompt:   "Who are you actually making this for?",
			Category: "audience",
			Cards: []Card{
				{ID: "bw-11-a", Label: "People who were in the room when it happened", Weights: map[genome.Designation]float64{"S-0": 0.7, "R-10": 0.3}},
				{ID: "bw-11-b", Label: "People who'll get it in ten years", Weights: map[genome.Designation]float64{"V-2": 0.6, "F-9": 0.4}},
				{ID: "bw-11-c", Label: "People with the same strange taste", Weights: map[genome.Designation]float64{"C-4": 0.7, "L-3": 0.3}},
				{ID: "bw-11-d", Label: "Nobody — the work is for itself", Weights: map[genome.Designation]float64{"NULL": 0.7, "N-5": 0.3}},
			},
		},
		{
			ID:       "bw-12",
			Prompt:   "A post flops. Your honest first reaction:",
			Category: "audience",
			Cards: []Card{
				{ID: "bw-12-a", Label: "Check the data — timing, hook, thumbnail", Weights: map[genome.Designation]float64{"R-10": 0.8, "T-1": 0.2}},
				{ID: "bw-12-b", Label: "The audience isn't ready yet", Weights: map[genome.Designation]float64{"V-2": 0.7, "P-7": 0.3}},
				{ID: "bw-12-c", Label: "Doesn't matter, it belonged in the world", Weights: map[genome.Designation]float64{"N-5": 0.6, "NULL": 0.4}},
				{ID: "bw-12-d", Label: "Re-cut it into something gentler", Weights: map[genome.Designation]float64{"H-6": 0.7, "S-0": 0.3}},
			},
		},
		// collaboration
		{
			ID:       "bw-13",
			Prompt:   "In a group project you drift toward…",
			Category: "collaboration",
			Cards: []Card{
				{ID: "bw-13-a", Label: "Keeping the peace and the schedule", Weights: map[genome.Designation]float64{"H-6": 0.7, "R-10": 0.3}},
				{ID: "bw-13-b", Label: "Owning the hardest technical piece", Weights: map[genome.Designation]float64{"T-1": 0.8, "F-9": 0.2}},
				{ID: "bw-13-c", Label: "Pitching the version nobody expected", Weights: map[genome.Designation]float64{"V-2": 0.7, "D-8": 0.3}},
				{ID: "bw-13-d", Label: "Working alone, merging late", Weights: map[genome.Designation]float64{"NULL": 0.6, "L-3": 0.4}},
			},
		},
		{
			ID:       "bw-14",
			Prompt:   "The collaborator you can't work with:",
			Category: "collaboration",
			Cards: []Card{
				{ID: "bw-14-a", Label: "The one who won't commit to a plan", Weights: map[genome.Designation]float64{"T-1": 0.6, "R-10": 0.4}},
				{ID: "bw-14-b", Label: "The one who sands every edge off", Weights: map[genome.Designation]float64{"P-7": 0.6, "D-8": 0.4}},
				{ID: "bw-14-c", Label: "The one who never listens first", Weights: map[genome.Designation]float64{"H-6": 0.6, "S-0": 0.4}},
				{ID: "bw-14-d", Label: "The one who needs a reference for everything", Weights: map[genome.Designation]float64{"N-5": 0.5, "V-2": 0.5}},
			},
		},
		{
			ID:       "bw-15",
			Prompt:   "Feedback arrives: \"make it more like what's working.\" You…",
			Category: "collaboration",
			Cards: []Card{
				{ID: "bw-15-a", Label: "Study what's working and adapt honestly", Weights: map[genome.Designation]float64{"C-4": 0.6, "R-10": 0.4}},
				{ID: "bw-15-b", Label: "Push back with a stronger original", Weights: map[genome.Designation]float64{"V-2": 0.8, "P-7": 0.2}},
				{ID: "bw-15-c", Label: "Find the compromise both sides can love", Weights: map[genome.Designation]float64{"H-6": 0.8, "S-0": 0.2}},
				{ID: "bw-15-d", Label: "Quietly keep making what you make", Weights: map[genome.Designation]float64{"N-5": 0.6, "NULL": 0.4}},
			},
		},
		// format
		{
			ID:       "bw-16",
			Prompt:   "Given one free afternoon to play, you open…",
			Category: "format",
			Cards: []Card{
				{ID: "bw-16-a", Label: "A tool you haven't mastered yet", Weights: map[genome.Designation]float64{"T-1": 0.7, "F-9": 0.3}},
				{ID: "bw-16-b", Label: "A notebook, longhand", Weights: map[genome.Designation]float64{"L-3": 0.8, "N-5": 0.2}},
				{ID: "bw-16-c", Label: "An archive of other people's work", Weights: map[genome.Designation]float64{"C-4": 0.8, "S-0": 0.2}},
				{ID: "bw-16-d", Label: "A format that shouldn't work at all", Weights: map[genome.Designation]float64{"D-8": 0.7, "V-2": 0.3}},
			},
		},
		{
			ID:       "bw-17",
			Prompt:   "The platform changes its algorithm overnight. You…",
			Category: "format",
			Cards: []Card{
				{ID: "bw-17-a", Label: "Read the release notes and re-tool", Weights: map[genome.Designation]float64{"R-10": 0.6, "T-1": 0.4}},
				{ID: "bw-17-b", Label: "Bet on the format after this one", Weights: map[genome.Designation]float64{"F-9": 0.8, "V-2": 0.2}},
				{ID: "bw-17-c", Label: "Ignore it — good work finds its people", Weights: map[genome.Designation]float64{"N-5": 0.5, "L-3": 0.5}},
				{ID: "bw-17-d", Label: "Post something that mocks the change", Weights: map[genome.Designation]float64{"P-7": 0.7, "D-8": 0.3}},
			},
		},
		{
			ID:       "bw-18",
			Prompt:   "Ten years from now your archive should read as…",
			Category: "format",
			Cards: []Card{
				{ID: "bw-18-a", Label: "A record of a scene, told well", Weights: map[genome.Designation]float64{"S-0": 0.7, "C-4": 0.3}},
				{ID: "bw-18-b", Label: "Proof I saw it coming", Weights: map[genome.Designation]float64{"F-9": 0.7, "D-8": 0.3}},
				{ID: "bw-18-c", Label: "A body of work with one clear voice", Weights: map[genome.Designation]float64{"L-3": 0.6, "H-6": 0.4}},
				{ID: "bw-18-d", Label: "Unclassifiable, and better for it", Weights: map[genome.Designation]float64{"NULL": 0.6, "P-7": 0.4}},
			},
		},
	}
}

func defaultHoning() []HoningTemplate {
	return []HoningTemplate{
		{
			Pair: Pair{A: "V-2", B: "S-0"},
			Questions: []Question{{
				ID:       "hone-v2-s0-1",
				Prompt:   "The idea or the telling — which would you give up last?",
				Category: "honing",
				Cards: []Card{
					{ID: "hone-v2-s0-1-a", Label: "The idea; the telling can be rebuilt", Weights: map[genome.Designation]float64{"V-2": 1.0}},
					{ID: "hone-v2-s0-1-b", Label: "The telling; ideas are everywhere", Weights: map[genome.Designation]float64{"S-0": 1.0}},
					{ID: "hone-v2-s0-1-c", Label: "A new idea told plainly", Weights: map[genome.Designation]float64{"V-2": 0.7, "S-0": 0.3}},
					{ID: "hone-v2-s0-1-d", Label: "A familiar idea told perfectly", Weights: map[genome.Designation]float64{"S-0": 0.7, "V-2": 0.3}},
				},
			}},
		},
		{
			Pair: Pair{A: "C-4", B: "R-10"},
			Questions: []Question{{
				ID:       "hone-c4-r10-1",
				Prompt:   "You keep a collection because…",
				Category: "honing",
				Cards: []Card{
					{ID: "hone-c4-r10-1-a", Label: "Taste is an argument; the collection makes it", Weights: map[genome.Designation]float64{"C-4": 1.0}},
					{ID: "hone-c4-r10-1-b", Label: "It's evidence of what actually performs", Weights: map[genome.Designation]float64{"R-10": 1.0}},
					{ID: "hone-c4-r10-1-c", Label: "Reference beats memory", Weights: map[genome.Designation]float64{"C-4": 0.6, "R-10": 0.4}},
					{ID: "hone-c4-r10-1-d", Label: "You don't; you keep receipts", Weights: map[genome.Designation]float64{"R-10": 0.7, "C-4": 0.3}},
				},
			}},
		},
		{
			Pair: Pair{A: "T-1", B: "F-9"},
			Questions: []Question{{
				ID:       "hone-t1-f9-1",
				Prompt:   "A new tool drops. Your first hour with it:",
				Category: "honing",
				Cards: []Card{
					{ID: "hone-t1-f9-1-a", Label: "Benchmark it against the old workflow", Weights: map[genome.Designation]float64{"T-1": 1.0}},
					{ID: "hone-t1-f9-1-b", Label: "Imagine what it makes possible next year", Weights: map[genome.Designation]float64{"F-9": 1.0}},
					{ID: "hone-t1-f9-1-c", Label: "Break it to find its edges", Weights: map[genome.Designation]float64{"T-1": 0.6, "F-9": 0.4}},
					{ID: "hone-t1-f9-1-d", Label: "Ship something with it immediately", Weights: map[genome.Designation]float64{"F-9": 0.6, "T-1": 0.4}},
				},
			}},
		},
		{
			Pair: Pair{A: "D-8", B: "P-7"},
			Questions: []Question{{
				ID:       "hone-d8-p7-1",
				Prompt:   "Breaking the form vs. breaking the room:",
				Category: "honing",
				Cards: []Card{
					{ID: "hone-d8-p7-1-a", Label: "I break formats, not people", Weights: map[genome.Designation]float64{"D-8": 1.0}},
					{ID: "hone-d8-p7-1-b", Label: "Discomfort is the medium", Weights: map[genome.Designation]float64{"P-7": 1.0}},
					{ID: "hone-d8-p7-1-c", Label: "A strange form that starts arguments", Weights: map[genome.Designation]float64{"D-8": 0.6, "P-7": 0.4}},
					{ID: "hone-d8-p7-1-d", Label: "A familiar form with a barb in it", Weights: map[genome.Designation]float64{"P-7": 0.6, "D-8": 0.4}},
				},
			}},
		},
		{
			Pair: Pair{A: "H-6", B: "L-3"},
			Questions: []Question{{
				ID:       "hone-h6-l3-1",
				Prompt:   "Quiet work: for whom?",
				Category: "honing",
				Cards: []Card{
					{ID: "hone-h6-l3-1-a", Label: "For the room — calm is a gift you give", Weights: map[genome.Designation]float64{"H-6": 1.0}},
					{ID: "hone-h6-l3-1-b", Label: "For the line — precision is private", Weights: map[genome.Designation]float64{"L-3": 1.0}},
					{ID: "hone-h6-l3-1-c", Label: "Both: spare work that soothes", Weights: map[genome.Designation]float64{"H-6": 0.5, "L-3": 0.5}},
					{ID: "hone-h6-l3-1-d", Label: "Neither: quiet is just my volume", Weights: map[genome.Designation]float64{"L-3": 0.6, "H-6": 0.4}},
				},
			}},
		},
		{
			Pair: Pair{A: "N-5", B: "NULL"},
			Questions: []Question{{
				ID:       "hone-n5-null-1",
				Prompt:   "\"Unfiltered\" means…",
				Category: "honing",
				Cards: []Card{
					{ID: "hone-n5-null-1-a", Label: "True to life as found", Weights: map[genome.Designation]float64{"N-5": 1.0}},
					{ID: "hone-n5-null-1-b", Label: "Indifferent to category entirely", Weights: map[genome.Designation]float64{"NULL": 1.0}},
					{ID: "hone-n5-null-1-c", Label: "Documentary with no agenda", Weights: map[genome.Designation]float64{"N-5": 0.6, "NULL": 0.4}},
					{ID: "hone-n5-null-1-d", Label: "Whatever happened that day", Weights: map[genome.Designation]float64{"NULL": 0.6, "N-5": 0.4}},
				},
			}},
		},
	}
}
