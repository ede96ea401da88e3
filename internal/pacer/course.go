// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pacer

import "sort"

// minTotalWeight is the division guard: a course whose chapters sum to less
// than this is invalid for pacing arithmetic.
const minTotalWeight = 1e-4

// Chapter belongs to a Course. Its identity within a goal is the pair
// (course.Sym, Seq); ID is used only for deletion/update, never as a
// cross-reference from a Goal.
type Chapter struct {
	ID       int64
	CourseID int64
	Seq      int16
	Title    string
	Subject  *string
	Weight   float64
}

// Course carries an ordered sequence of Chapters and a derived total
// weight, cached on load.
type Course struct {
	ID       int64
	Sym      string
	Title    string
	Book     *string
	Level    float64
	Chapters []Chapter

	totalWeight      float64
	totalWeightValid bool
}

// NewCourse constructs a Course from its own fields and an unsorted chapter
// slice, as produced by a TOML course definition or a fresh upload.
func NewCourse(sym, title string, book *string, level float64, chapters []Chapter) *Course {
	return &Course{
		Sym:      sym,
		Title:    title,
		Book:     book,
		Level:    level,
		Chapters: chapters,
	}
}

// Chapter returns the chapter with the given sequence number, or false if
// none matches. Lookup ties are impossible since Seq is unique per course;
// a linear scan is used since chapter counts per course are small.
func (c *Course) Chapter(seq int16) (Chapter, bool) {
	for _, ch := range c.Chapters {
		if ch.Seq == seq {
			return ch, true
		}
	}
	return Chapter{}, false
}

// AllChapters returns the course's chapters in ascending seq order. The
// receiver's slice is sorted in place on first call.
func (c *Course) AllChapters() []Chapter {
	sortChaptersBySeq(c.Chapters)
	return c.Chapters
}

// TotalWeight returns Σ chapter.Weight, computed once and cached.
func (c *Course) TotalWeight() float64 {
	if c.totalWeightValid {
		return c.totalWeight
	}
	var total float64
	for _, ch := range c.Chapters {
		total += ch.Weight
	}
	c.totalWeight = total
	c.totalWeightValid = true
	return total
}

// ValidForPacing reports whether the course's total weight clears the
// division guard required before it can participate in pacing arithmetic.
func (c *Course) ValidForPacing() bool {
	return c.TotalWeight() >= minTotalWeight
}

func sortChaptersBySeq(chapters []Chapter) {
	sort.Slice(chapters, func(i, j int) bool { return chapters[i].Seq < chapters[j].Seq })
}
