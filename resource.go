package folio

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const maxBodySize = 1 << 20

// record is implemented by pointers to the stored content types.
type record[T any] interface {
	*T
	model() *Model
	Validate() error
}

// resource serves list/create/update/delete for one content type. view
// turns a stored row into its response body.
type resource[T any, PT record[T]] struct {
	app   *App
	order string
	view  func(*T) any
}

func newResource[T any, PT record[T]](a *App, order string) *resource[T, PT] {
	return &resource[T, PT]{
		app:   a,
		order: order,
		view:  func(row *T) any { return row },
	}
}

func (r *resource[T, PT]) register(g *echo.Group, path string, withDelete bool) {
	g.GET(path, r.list)
	g.POST(path, r.create, r.app.requireAdmin, r.app.apiCSRF)
	g.PUT(path, r.update, r.app.requireAdmin, r.app.apiCSRF)
	if withDelete {
		g.DELETE(path, r.remove, r.app.requireAdmin, r.app.apiCSRF)
	}
}

func (r *resource[T, PT]) list(c echo.Context) error {
	rows, err := listRecords[T](c.Request().Context(), r.app.Store, r.order)
	if err != nil {
		return err
	}
	out := make([]any, len(rows))
	for i := range rows {
		out[i] = r.view(&rows[i])
	}
	return c.JSON(http.StatusOK, out)
}

func (r *resource[T, PT]) create(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}
	var row T
	if err := json.Unmarshal(body, &row); err != nil {
		return ErrInvalid("malformed JSON body")
	}
	p := PT(&row)
	*p.model() = Model{}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := createRecord(c.Request().Context(), r.app.Store, &row); err != nil {
		return err
	}
	r.app.Cache.Invalidate(c.Request().Context())
	return c.JSON(http.StatusCreated, r.view(&row))
}

// update overwrites the fields present in the body on the row named by its
// id. The row identity cannot be changed through the body.
func (r *resource[T, PT]) update(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}
	var ref struct {
		ID uint `json:"id"`
	}
	if err := json.Unmarshal(body, &ref); err != nil {
		return ErrInvalid("malformed JSON body")
	}
	if ref.ID == 0 {
		return ErrInvalid("id is required")
	}

	ctx := c.Request().Context()
	row, err := getRecord[T](ctx, r.app.Store, ref.ID)
	if err != nil {
		return notFound(err)
	}
	p := PT(row)
	identity := *p.model()
	if err := json.Unmarshal(body, row); err != nil {
		return ErrInvalid("malformed JSON body")
	}
	m := p.model()
	m.ID, m.CreatedAt = identity.ID, identity.CreatedAt
	if err := p.Validate(); err != nil {
		return err
	}
	if err := saveRecord(ctx, r.app.Store, row); err != nil {
		return err
	}
	r.app.Cache.Invalidate(ctx)
	return c.JSON(http.StatusOK, r.view(row))
}

func (r *resource[T, PT]) remove(c echo.Context) error {
	id, err := queryID(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := deleteRecord[T](ctx, r.app.Store, id); err != nil {
		return notFound(err)
	}
	r.app.Cache.Invalidate(ctx)
	return c.JSON(http.StatusOK, map[string]string{"message": "Deleted successfully"})
}

func readBody(c echo.Context) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, maxBodySize))
	if err != nil {
		return nil, ErrInvalid("request body too large or unreadable")
	}
	return body, nil
}

// decodeBody reads a size-limited JSON body into v.
func decodeBody(c echo.Context, v any) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return ErrInvalid("malformed JSON body")
	}
	return nil
}

func queryID(c echo.Context) (uint, error) {
	raw := c.QueryParam("id")
	if raw == "" {
		return 0, ErrInvalid("id is required")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalid("id must be a positive integer")
	}
	return uint(id), nil
}

// notFound turns ErrNotFound into the API's 404 and passes other errors through.
func notFound(err error) error {
	if asError(err).Code == ErrCodeNotFound {
		return ErrMissing("Not found")
	}
	return err
}
