package client

import (
	"net/url"
	"strconv"

	"github.com/fivetwenty-io/bshengine-client/internal/constants"
	"github.com/fivetwenty-io/bshengine-client/pkg/bsh"
)

// newRequest builds a JSON request. Content-Type is only declared when
// there is a body to describe.
func newRequest(path, operation string, body any, opts []bsh.CallOption) *bsh.Request {
	headers := map[string]string{}
	if body != nil {
		headers[constants.HeaderContentType] = constants.ContentTypeJSON
	}

	return &bsh.Request{
		Path:          path,
		Headers:       headers,
		Body:          body,
		Format:        bsh.FormatJSON,
		Callbacks:     bsh.ApplyCallOptions(opts...),
		OperationName: operation,
	}
}

// newFormRequest builds a multipart request. The transport sets the
// Content-Type with its boundary.
func newFormRequest(path, operation string, form *bsh.Form, opts []bsh.CallOption) *bsh.Request {
	return &bsh.Request{
		Path:          path,
		Headers:       map[string]string{},
		Body:          form,
		Format:        bsh.FormatForm,
		Callbacks:     bsh.ApplyCallOptions(opts...),
		OperationName: operation,
	}
}

func joinID(base, id string) string {
	return base + "/" + url.PathEscape(id)
}

func joinIntID(base string, id int) string {
	return base + "/" + strconv.Itoa(id)
}

// withQuery appends query parameters in key order.
func withQuery(path string, query map[string]string) string {
	if len(query) == 0 {
		return path
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	return path + "?" + values.Encode()
}

// searchBody keeps a nil search from being sent as a JSON null.
func searchBody(search *bsh.Search) any {
	if search == nil {
		return bsh.NewSearch()
	}

	return search
}

func requireID(id string) error {
	if id == "" {
		return bsh.ErrIDRequired
	}

	return nil
}
