package proxy

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/go-resty/resty/v2"
)

const maxFormValueSize = 1 << 20

// relayMultipart spools the first file part of the inbound form to a
// temporary file and resubmits it, together with the plain form fields, as a
// new multipart request to the target's origin. Further file parts are
// discarded. The temporary file is removed before returning on every path.
func (r *Relay) relayMultipart(ctx context.Context, call Call) (*resty.Response, error) {
	origin, err := targetOrigin(call.Target)
	if err != nil {
		return nil, err
	}

	mr, err := call.Request.MultipartReader()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMultipartBody, err)
	}

	fields := make(map[string]string)
	var (
		file      *os.File
		fileField string
		fileName  string
	)
	defer func() {
		if file != nil {
			file.Close()
			os.Remove(file.Name())
		}
	}()

	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMultipartBody, err)
		}

		if part.FileName() == "" {
			value, err := io.ReadAll(io.LimitReader(part, maxFormValueSize))
			part.Close()
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMultipartBody, err)
			}
			fields[part.FormName()] = string(value)
			continue
		}

		if file != nil {
			part.Close()
			continue
		}

		file, err = os.CreateTemp(r.tempDir, "restlite-upload-*"+filepath.Ext(part.FileName()))
		if err != nil {
			part.Close()
			return nil, fmt.Errorf("%w: %w", ErrTempFile, err)
		}
		fileField, fileName = part.FormName(), filepath.Base(part.FileName())

		_, err = io.Copy(file, part)
		part.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMultipartBody, err)
		}
		if _, err = file.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrTempFile, err)
		}
	}

	headers := outboundHeaders(call.Request)
	headers.Del("Content-Type")

	req := r.client.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		SetHeaderMultiValues(headers).
		SetMultipartFormData(fields)
	if file != nil {
		req.SetFileReader(fileField, fileName, file)
	}

	resp, err := req.Execute(call.Request.Method, origin+call.URI)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	return resp, nil
}

// targetOrigin reduces a target such as "http://host:2000/base" to its
// scheme, host and port. Multipart uploads are sent to the origin, a base
// path on the target is not applied.
func targetOrigin(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidTarget, target)
	}
	return u.Scheme + "://" + u.Host, nil
}
