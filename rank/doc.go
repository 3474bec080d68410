// Package rank selects the harvested pages most relevant to a question.
//
// Scoring is deliberately simple: a page scores one point for every distinct
// query term that appears anywhere in its lowercased text. Pages are ordered
// by descending score; equal scores keep corpus order, so a query that
// matches nothing yields the first pages of the corpus.
package rank
