// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mailchimp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-mailchimp-client/pkg/errors"
)

// ErrorObject is the problem document the provider sends with 4xx and 5xx answers
type ErrorObject struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
}

// parseErrorObject decodes a problem document. Fields are left empty when the
// body is not one.
func parseErrorObject(body []byte) ErrorObject {
	var problem ErrorObject
	_ = json.Unmarshal(body, &problem)
	return problem
}

// signupThrottled reports whether the provider refused the address because
// it joined too many lists recently
func (e ErrorObject) signupThrottled() bool {
	return e.Title != constants.InvalidResourceTitle &&
		strings.Contains(e.Detail, constants.SignupThrottleDetail)
}

func (e ErrorObject) message(statusCode int) string {
	switch {
	case e.Title != "" && e.Detail != "":
		return fmt.Sprintf("Mailchimp API error (%d): %s: %s", statusCode, e.Title, e.Detail)
	case e.Title != "":
		return fmt.Sprintf("Mailchimp API error (%d): %s", statusCode, e.Title)
	case e.Detail != "":
		return fmt.Sprintf("Mailchimp API error (%d): %s", statusCode, e.Detail)
	}
	return fmt.Sprintf("Mailchimp API error (%d): %s", statusCode, http.StatusText(statusCode))
}

// ClassifyResponse maps a response status and body to the error taxonomy.
// Statuses below 400 yield nil.
func ClassifyResponse(statusCode int, body []byte) error {
	if statusCode < http.StatusBadRequest {
		return nil
	}

	problem := parseErrorObject(body)
	message := problem.message(statusCode)

	if statusCode < http.StatusInternalServerError {
		if problem.signupThrottled() {
			return errors.NewBadEmailAddress(message, statusCode, string(body))
		}
		return errors.NewBadRequest(message, statusCode, string(body))
	}

	return errors.NewInternalError(message, statusCode, string(body))
}
