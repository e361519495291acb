package services

import (
	"math"
	"regexp"
	"strconv"
)

var (
	relevanceRe  = regexp.MustCompile(`(?i)Relevance Percentage:\s*([\d.]+)%`)
	totalScoreRe = regexp.MustCompile(`(?i)Total Score:\s*(\d+)\s*(?:/|out of)\s*(\d+)`)
)

// ExtractMatchPercentage pulls the relevance percentage out of a model
// response. It looks for a "Relevance Percentage: XX%" line first and
// falls back to a "Total Score: X/Y" (or "X out of Y") line converted
// to a percentage, rounded to two decimals. The response format is not
// machine-enforced, so absence is not an error: the caller gets nil
// and presents the text as-is.
func ExtractMatchPercentage(response string) *float64 {
	if m := relevanceRe.FindStringSubmatch(response); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return &v
		}
	}

	if m := totalScoreRe.FindStringSubmatch(response); m != nil {
		obtained, err1 := strconv.ParseFloat(m[1], 64)
		total, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil && total > 0 {
			v := math.Round(obtained/total*10000) / 100
			return &v
		}
	}

	return nil
}
