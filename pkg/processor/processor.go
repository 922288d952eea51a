package processor

import (
	"context"
	"strings"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/wisteria/pkg/models"
	"github.com/Ramsey-B/wisteria/pkg/tracing"
)

// Processor runs the row cleaner over a whole export batch.
type Processor struct {
	logger ectologger.Logger
}

// NewProcessor creates a new batch processor
func NewProcessor(logger ectologger.Logger) *Processor {
	return &Processor{logger: logger}
}

// CleanBatch applies the row cleaner to every row in order and folds the
// aggregate statistics. One bad row never blocks any other row; there is no
// error path here by design.
func (p *Processor) CleanBatch(ctx context.Context, rows []models.RawRecord) ([]models.CleanedCustomer, models.BatchStatistics) {
	ctx, span := tracing.StartSpan(ctx, "processor.Processor.CleanBatch")
	defer span.End()

	cleaned := make([]models.CleanedCustomer, 0, len(rows))
	for _, row := range rows {
		cleaned = append(cleaned, CleanRow(row))
	}

	stats := ComputeStatistics(cleaned)

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"total_records":       stats.TotalRecords,
		"records_with_issues": stats.RecordsWithIssues,
		"total_issues":        stats.TotalIssues,
	}).Info("Cleaned export batch")

	return cleaned, stats
}

// ComputeStatistics folds batch statistics from cleaned records alone, so the
// numbers can always be recomputed as a cross-check. Issue types are bucketed
// by the text preceding the first colon of each issue message.
func ComputeStatistics(cleaned []models.CleanedCustomer) models.BatchStatistics {
	stats := models.BatchStatistics{
		IssuesByType: make(map[string]int),
	}

	for _, c := range cleaned {
		stats.TotalRecords++
		count := len(c.CleaningReport.Issues)
		if count > 0 {
			stats.RecordsWithIssues++
		}
		stats.TotalIssues += count
		for _, issue := range c.CleaningReport.Issues {
			stats.IssuesByType[issueType(issue)]++
		}
	}

	return stats
}

// issueType returns the categorical tag of an issue message.
func issueType(issue string) string {
	if i := strings.Index(issue, ":"); i >= 0 {
		return strings.TrimSpace(issue[:i])
	}
	return issue
}
