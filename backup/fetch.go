package backup

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/uhppoted/smartsheet-backup/smartsheet"
)

// fetch retrieves the history of every cell in the sheet with at most r.concurrency requests in
// flight. The histories are returned indexed [column][row] in sheet order.
func (r *Runner) fetch(ctx context.Context, log *zap.SugaredLogger, sheetID int64, name string, sheet *smartsheet.Sheet) ([][]json.RawMessage, error) {
	histories := make([][]json.RawMessage, len(sheet.Columns))
	failed := make([][]error, len(sheet.Columns))

	for i := range sheet.Columns {
		histories[i] = make([]json.RawMessage, len(sheet.Rows))
		failed[i] = make([]error, len(sheet.Rows))
	}

	g := &errgroup.Group{}
	gctx := ctx
	if r.onError != CollectAll {
		g, gctx = errgroup.WithContext(ctx)
	}

	g.SetLimit(r.concurrency)

loop:
	for i, column := range sheet.Columns {
		for j, row := range sheet.Rows {
			if gctx.Err() != nil {
				break loop
			}

			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}

				log.Infof("Processing column:'%v' row:%v", column.Title, row.RowNumber)

				history, err := r.api.GetCellHistory(gctx, sheetID, row.ID, column.ID)
				if err != nil {
					err = &FetchError{
						Op:     "get cell history",
						Sheet:  name,
						Row:    row.RowNumber,
						Column: column.Title,
						Err:    err,
					}

					log.Errorw("cell history fetch failed", "column", column.Title, "row", row.RowNumber, "error", err)

					if r.onError == CollectAll {
						failed[i][j] = err
						return nil
					}

					return err
				}

				histories[i][j] = history

				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	errs := []error{}
	for i := range failed {
		for _, err := range failed[i] {
			if err != nil {
				errs = append(errs, err)
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return histories, nil
}
