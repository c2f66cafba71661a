package website

import (
	"errors"
	"net/http"

	"git.tidepool.community/tidepool/tidepool/src/assets"
	"git.tidepool.community/tidepool/tidepool/src/db"
	"git.tidepool.community/tidepool/tidepool/src/models"
	"git.tidepool.community/tidepool/tidepool/src/oops"
	"git.tidepool.community/tidepool/tidepool/src/parsing"
	"git.tidepool.community/tidepool/tidepool/src/relocation"
	"git.tidepool.community/tidepool/tidepool/src/tpdata"
)

type contentCommentJson struct {
	ID        string `json:"id"`
	AuthorID  *int   `json:"author_id"`
	Body      string `json:"body"`
	BodyHtml  string `json:"body_html"`
	CreatedAt string `json:"created_at"`
}

type contentItemJson struct {
	Type      string  `json:"type"`
	ID        string  `json:"id"`
	Title     *string `json:"title"`
	Text      string  `json:"text"`
	TextHtml  string  `json:"text_html"`
	AuthorID  *int    `json:"author_id"`
	ImageUrl  *string `json:"image_url,omitempty"`
	CreatedAt string  `json:"created_at"`
	MusicUrl  *string `json:"music_url,omitempty"`

	Comments []contentCommentJson `json:"comments"`
}

// ContentView returns a handler serving one content type's detail page. If
// the item was relocated, visitors get a redirect to its new home instead of
// the item itself.
func ContentView(contentType models.ContentType) Handler {
	return func(c *RequestContext) ResponseData {
		ref := models.ContentRef{Type: contentType, ID: c.PathParams["id"]}

		item, err := tpdata.FetchContentItem(c, c.Conn, ref)
		if err != nil {
			if errors.Is(err, db.NotFound) {
				return FourOhFour(c)
			}
			return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch content item"))
		}

		if target, moved, err := relocation.RedirectTarget(c, c.Conn, ref, item.Stamp); err != nil {
			return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to resolve redirect"))
		} else if moved {
			return c.Redirect(target, http.StatusSeeOther)
		}

		comments, err := tpdata.FetchComments(c, c.Conn, ref)
		if err != nil {
			return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch comments"))
		}

		var imageUrl *string
		if item.ImageAssetID != nil {
			asset, err := tpdata.FetchAsset(c, c.Conn, *item.ImageAssetID)
			if err == nil {
				url := assets.PublicUrl(asset)
				imageUrl = &url
			} else if !errors.Is(err, db.NotFound) {
				return c.ErrorResponse(http.StatusInternalServerError, oops.New(err, "failed to fetch image asset"))
			}
		}

		result := contentItemJson{
			Type:      string(ref.Type),
			ID:        ref.ID,
			Title:     item.Title,
			Text:      item.Text,
			TextHtml:  parsing.ParseMarkdown(item.Text),
			AuthorID:  item.AuthorID,
			ImageUrl:  imageUrl,
			CreatedAt: item.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			MusicUrl:  item.MusicUrl,
			Comments:  []contentCommentJson{},
		}
		for _, comment := range comments {
			result.Comments = append(result.Comments, contentCommentJson{
				ID:        comment.ID,
				AuthorID:  comment.AuthorID,
				Body:      comment.Body,
				BodyHtml:  parsing.ParseMarkdown(comment.Body),
				CreatedAt: comment.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
			})
		}

		var res ResponseData
		res.WriteJson(result)
		return res
	}
}

func FourOhFour(c *RequestContext) ResponseData {
	return c.ErrorResponse(http.StatusNotFound)
}
