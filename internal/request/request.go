// Package request parses and sanity-checks inbound query parameters into
// domain filter values.
package request

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/rajansharma08/lyftr-webhook-api/internal/domain/message"
)

// ParseListQuery reads limit/offset/from/since/q parameters for the message
// listing endpoint. Absent limit/offset are left at zero so the query service
// can apply its defaults; non-numeric values are rejected with an error whose
// text is safe to return to the client.
func ParseListQuery(q url.Values) (message.ListFilter, error) {
	f := message.ListFilter{
		From:         q.Get("from"),
		Since:        q.Get("since"),
		TextContains: q.Get("q"),
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("limit must be an integer")
		}
		f.Limit = n
	}

	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("offset must be an integer")
		}
		f.Offset = n
	}

	return f, nil
}
