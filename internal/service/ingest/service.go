package ingest

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/pickprod/pickprod-backend-go/internal/domain/branch"
	"github.com/pickprod/pickprod-backend-go/internal/domain/production"
	"github.com/shopspring/decimal"
)

type IngestServiceImpl struct {
	productionRepo production.ProductionRepository
	branchRepo     branch.BranchRepository
}

func NewIngestService(
	productionRepo production.ProductionRepository,
	branchRepo branch.BranchRepository,
) production.IngestService {
	return &IngestServiceImpl{
		productionRepo: productionRepo,
		branchRepo:     branchRepo,
	}
}

func (s *IngestServiceImpl) Ingest(ctx context.Context, req production.IngestRequest) (production.IngestResult, error) {
	if err := req.Validate(); err != nil {
		return production.IngestResult{}, err
	}
	if len(req.Table.Rows) == 0 {
		return production.IngestResult{}, production.ErrEmptyTable
	}

	columns, err := resolveColumns(req.Kind, req.Table.Header)
	if err != nil {
		return production.IngestResult{}, err
	}

	branches, err := s.branchRepo.List(ctx, true)
	if err != nil {
		return production.IngestResult{}, fmt.Errorf("failed to load branches: %w", err)
	}

	resolver := newBranchResolver(branches)

	switch req.Kind {
	case production.KindReceivingDetail:
		return s.ingestReceivingDetail(ctx, req.Table, columns, resolver)
	default:
		return s.ingestTimeWindows(ctx, req.Table, columns, resolver)
	}
}

// branchResolver matches free-form branch text by substring containment of
// branch code or name, remembering every text that matched nothing.
type branchResolver struct {
	branches  []branch.Branch
	resolved  map[string]string
	unmatched map[string]bool
}

func newBranchResolver(branches []branch.Branch) *branchResolver {
	return &branchResolver{
		branches:  branches,
		resolved:  make(map[string]string),
		unmatched: make(map[string]bool),
	}
}

func (r *branchResolver) resolve(raw string) (string, bool) {
	if raw == "" {
		r.unmatched["(blank)"] = true
		return "", false
	}
	if id, ok := r.resolved[raw]; ok {
		return id, true
	}
	for _, b := range r.branches {
		if b.Matches(raw) {
			r.resolved[raw] = b.ID
			return b.ID, true
		}
	}
	r.unmatched[raw] = true
	return "", false
}

// err returns the batch-fatal unknown-branch error when any text failed to
// resolve. Silently dropping unmatched financial rows is never acceptable.
func (r *branchResolver) err() error {
	if len(r.unmatched) == 0 {
		return nil
	}
	names := make([]string, 0, len(r.unmatched))
	for name := range r.unmatched {
		names = append(names, name)
	}
	sort.Strings(names)
	return &production.UnknownBranchError{Names: names}
}

func (s *IngestServiceImpl) ingestReceivingDetail(ctx context.Context, table production.Table, columns map[string]int, resolver *branchResolver) (production.IngestResult, error) {
	var result production.IngestResult

	// Collection identifiers are minted once per code and reused for every
	// row carrying the same code within this batch.
	collectionIDs := make(map[string]string)

	type parsedLine struct {
		line production.ReceivingLine
		row  int
	}
	parsed := make([]parsedLine, 0, len(table.Rows))

	// Parse and resolve everything before the first insert so a structurally
	// or referentially broken file writes zero rows.
	for i, row := range table.Rows {
		rowNum := i + 2 // 1-based, after the header row

		code := cell(row, columns, colCollection)
		if code == "" {
			result.Rejected = append(result.Rejected, production.RejectedRow{Row: rowNum, Reason: "missing collection code"})
			continue
		}

		branchID, ok := resolver.resolve(cell(row, columns, colBranch))
		if !ok {
			continue
		}

		collectionID, ok := collectionIDs[code]
		if !ok {
			collectionID = uuid.New().String()
			collectionIDs[code] = collectionID
		}

		parsed = append(parsed, parsedLine{
			row: rowNum,
			line: production.ReceivingLine{
				ID:             uuid.New().String(),
				CollectionID:   collectionID,
				BranchID:       branchID,
				CollectionCode: code,
				Supplier:       cell(row, columns, colSupplier),
				InvoiceNumber:  cell(row, columns, colInvoice),
				ClientCode:     extractClientCode(cell(row, columns, colClient)),
				ReceiptDate:    parseDate(cell(row, columns, colDate)),
				ReceivedBy:     cell(row, columns, colReceivedBy),
				BoxCount:       int(parseNumber(cell(row, columns, colBoxes))),
				NetWeight:      decimal.NewFromFloat(parseNumber(cell(row, columns, colWeight))),
			},
		})
	}

	if err := resolver.err(); err != nil {
		return production.IngestResult{}, err
	}

	for _, p := range parsed {
		err := s.productionRepo.InsertReceivingLine(ctx, p.line)
		switch {
		case err == nil:
			result.Inserted++
		case errors.Is(err, production.ErrLineExists):
			result.Duplicates++
		default:
			return production.IngestResult{}, fmt.Errorf("failed to insert receiving line at row %d: %w", p.row, err)
		}
	}

	return result, nil
}

func (s *IngestServiceImpl) ingestTimeWindows(ctx context.Context, table production.Table, columns map[string]int, resolver *branchResolver) (production.IngestResult, error) {
	var result production.IngestResult

	type parsedWindow struct {
		window production.TimeWindow
		row    int
	}
	parsed := make([]parsedWindow, 0, len(table.Rows))

	for i, row := range table.Rows {
		rowNum := i + 2

		code := cell(row, columns, colCollection)
		if code == "" {
			result.Rejected = append(result.Rejected, production.RejectedRow{Row: rowNum, Reason: "missing collection code"})
			continue
		}

		branchID, ok := resolver.resolve(cell(row, columns, colBranch))
		if !ok {
			continue
		}

		started := parseDate(cell(row, columns, colStart))
		ended := parseDate(cell(row, columns, colEnd))

		duration := production.NoFloat()
		if started != nil && ended != nil {
			hours := round2(ended.Sub(*started).Hours())
			if hours >= 0 {
				duration = production.SomeFloat(hours)
			}
		}

		parsed = append(parsed, parsedWindow{
			row: rowNum,
			window: production.TimeWindow{
				ID:             uuid.New().String(),
				BranchID:       branchID,
				CollectionCode: code,
				StartedAt:      started,
				EndedAt:        ended,
				DurationHours:  duration,
			},
		})
	}

	if err := resolver.err(); err != nil {
		return production.IngestResult{}, err
	}

	for _, p := range parsed {
		// Time data may arrive before receiving data: an unmatched code is
		// stored with a null collection link, not rejected.
		collectionID, err := s.productionRepo.FindCollectionID(ctx, p.window.CollectionCode)
		switch {
		case err == nil:
			p.window.CollectionID = &collectionID
		case errors.Is(err, production.ErrLineNotFound):
			// keep null link
		default:
			return production.IngestResult{}, fmt.Errorf("failed to resolve collection for row %d: %w", p.row, err)
		}

		err = s.productionRepo.InsertTimeWindow(ctx, p.window)
		switch {
		case err == nil:
			result.Inserted++
		case errors.Is(err, production.ErrWindowExists):
			result.Duplicates++
		default:
			return production.IngestResult{}, fmt.Errorf("failed to insert time window at row %d: %w", p.row, err)
		}
	}

	return result, nil
}
