// Package segment partitions an ordered list of pages into chapters using
// purely statistical methods.
//
// Segmentation cascades through three passes and returns the first result the
// Validator accepts:
//
//   - Pass A (RegexDetector): explicit chapter headings matched line by line.
//   - Pass B (TopicShiftSegmenter): TF-IDF cosine similarity between adjacent
//     page units; boundaries where similarity drops below a threshold, with a
//     bounded relaxation loop.
//   - Pass C (SyntheticSegmenter): equal-size partitioning that cannot fail
//     unless the configuration is unsatisfiable for the page count.
//
// A Segmenter holds only immutable state and may be shared between
// goroutines; each call builds its own vectorizer.
package segment
