// Package api exposes typed calls for the clubhub backend on top of the
// request gateway. Every call goes through a Doer, normally a
// *gateway.Gateway.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/clubhub/internal/client/formdata"
	"github.com/dmitrijs2005/clubhub/internal/client/gateway"
	"github.com/dmitrijs2005/clubhub/internal/common"
)

// Doer performs one gateway call.
type Doer interface {
	Do(ctx context.Context, endpoint string, req gateway.Request) (*gateway.Response, error)
}

type Client struct {
	doer Doer
}

func New(doer Doer) *Client {
	return &Client{doer: doer}
}

func (c *Client) call(ctx context.Context, method, endpoint string, out any) (*gateway.Response, error) {
	resp, err := c.doer.Do(ctx, endpoint, gateway.Request{Method: method})
	if err != nil {
		return nil, err
	}
	return resp, decodeInto(resp, out)
}

func (c *Client) callJSON(ctx context.Context, method, endpoint string, in, out any) (*gateway.Response, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("encode request %s %s: %w", method, endpoint, err)
	}
	resp, err := c.doer.Do(ctx, endpoint, gateway.Request{Method: method, Body: body})
	if err != nil {
		return nil, err
	}
	return resp, decodeInto(resp, out)
}

func (c *Client) callForm(ctx context.Context, method, endpoint string, form *formdata.Form, out any) (*gateway.Response, error) {
	body, contentType, err := form.Encode()
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	header.Set(common.ContentTypeHeaderName, contentType)

	resp, err := c.doer.Do(ctx, endpoint, gateway.Request{
		Method:     method,
		Header:     header,
		Body:       body,
		IsFormData: true,
	})
	if err != nil {
		return nil, err
	}
	return resp, decodeInto(resp, out)
}

// decodeInto leaves out untouched when the response has no data.
func decodeInto(resp *gateway.Response, out any) error {
	if out == nil || resp == nil || len(resp.Data) == 0 || bytes.Equal(bytes.TrimSpace(resp.Data), []byte("null")) {
		return nil
	}
	return resp.DecodeData(out)
}

func id(v int64) string { return strconv.FormatInt(v, 10) }
