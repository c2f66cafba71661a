package website

import (
	"errors"
	"net/http"

	"git.tidepool.community/tidepool/tidepool/src/db"
	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/oops"
	"git.tidepool.community/tidepool/tidepool/src/relocation"
	"git.tidepool.community/tidepool/tidepool/src/tpurl"
)

// AdminMove relocates a content item to another content type. Admin only.
// On success (or when the item was already moved) the response is a 303 to
// the destination's canonical page.
func AdminMove(c *RequestContext) ResponseData {
	form, err := c.GetFormValues()
	if err != nil {
		return c.RejectRequest("bad_form", "request must contain form data")
	}

	req := relocation.MoveRequest{
		SourceUrl:  form.Get("source_url"),
		SourceType: models.ContentType(form.Get("source_type")),
		SourceID:   form.Get("source_id"),
		DestType:   models.ContentType(form.Get("dest_type")),
		Extras: relocation.Extras{
			StartsAt: form.Get("starts_at"),
			Url:      form.Get("url"),
			UrlType:  form.Get("type"),
			Tags:     form.Get("tags"),
			Status:   form.Get("status"),
		},
		MoverID: c.CurrentUser.ID,
	}

	result, err := relocation.Move(c, c.Conn, req)
	if err != nil {
		if errors.Is(err, db.NotFound) {
			return FourOhFour(c)
		}
		var moveErr *relocation.MoveError
		if errors.As(err, &moveErr) {
			if moveErr == relocation.ErrLedgerMissing {
				res := ResponseData{StatusCode: http.StatusInternalServerError}
				res.WriteJson(map[string]any{
					"error":   moveErr.Code,
					"message": moveErr.Message,
				})
				return res
			}
			return c.RejectRequest(moveErr.Code, moveErr.Message)
		}
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to move content"))
	}

	return c.Redirect(tpurl.BuildContent(result.Dest), http.StatusSeeOther)
}

type moveRecordJson struct {
	ID            string `json:"id"`
	SourceType    string `json:"source_type"`
	SourceID      string `json:"source_id"`
	DestType      string `json:"dest_type"`
	DestID        string `json:"dest_id"`
	MovedByUserID int    `json:"moved_by_user_id"`
	MovedAt       string `json:"moved_at"`
}

// AdminMoveList returns the full move ledger, newest first.
func AdminMoveList(c *RequestContext) ResponseData {
	records, err := db.Query[models.MoveRecord](c, c.Conn,
		`
		SELECT $columns
		FROM move_record
		ORDER BY moved_at DESC
		`,
	)
	if err != nil {
		return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch move records"))
	}

	result := []moveRecordJson{}
	for _, record := range records {
		result = append(result, moveRecordJson{
			ID:            record.ID,
			SourceType:    string(record.SourceType),
			SourceID:      record.SourceID,
			DestType:      string(record.DestType),
			DestID:        record.DestID,
			MovedByUserID: record.MovedByUserID,
			MovedAt:       record.MovedAt.UTC().Format("2006-01-02T15:04:05Z"),
		})
	}

	var res ResponseData
	res.WriteJson(map[string]any{"moves": result})
	return res
}
