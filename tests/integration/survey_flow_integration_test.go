//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func baseURL() string {
	if v := os.Getenv("GREENPRINT_TEST_BASE_URL"); strings.TrimSpace(v) != "" {
		return strings.TrimRight(v, "/")
	}
	return "http://127.0.0.1:18080"
}

func TestSurveyJourneyIntegration(t *testing.T) {
	client := &http.Client{Timeout: 5 * time.Second}
	base := baseURL()

	userEmail := fmt.Sprintf("integration_%d@example.com", time.Now().UnixNano())
	password := "Secret123!"

	var registerResp struct {
		Token  string `json:"token"`
		UserID string `json:"user_id"`
	}
	doRequest(t, client, http.MethodPost, base+"/api/auth/register", "", map[string]string{
		"email":    userEmail,
		"password": password,
	}, &registerResp)
	if registerResp.Token == "" {
		t.Fatalf("unexpected register response: %+v", registerResp)
	}

	var loginResp struct {
		Token string `json:"token"`
	}
	doRequest(t, client, http.MethodPost, base+"/api/auth/login", "", map[string]string{
		"email":    userEmail,
		"password": password,
	}, &loginResp)
	token := loginResp.Token
	if token == "" {
		t.Fatalf("login did not return token")
	}

	var createResp struct {
		Message string `json:"message"`
		Survey  struct {
			ID             string `json:"id"`
			FootprintScore int    `json:"footprintScore"`
		} `json:"survey"`
	}
	doRequest(t, client, http.MethodPost, base+"/api/surveys", token, map[string]int{
		"footprintScore": 52,
	}, &createResp)
	if createResp.Survey.ID == "" || createResp.Survey.FootprintScore != 52 {
		t.Fatalf("unexpected create response: %+v", createResp)
	}

	var listResp struct {
		Surveys []struct {
			ID string `json:"id"`
		} `json:"surveys"`
	}
	doRequest(t, client, http.MethodGet, base+"/api/surveys", token, nil, &listResp)
	if len(listResp.Surveys) != 1 || listResp.Surveys[0].ID != createResp.Survey.ID {
		t.Fatalf("unexpected list response: %+v", listResp)
	}

	var updateResp struct {
		Survey struct {
			FootprintScore int `json:"footprintScore"`
		} `json:"survey"`
	}
	doRequest(t, client, http.MethodPut, base+"/api/surveys/"+createResp.Survey.ID, token, map[string]int{
		"footprintScore": 30,
	}, &updateResp)
	if updateResp.Survey.FootprintScore != 30 {
		t.Fatalf("unexpected update response: %+v", updateResp)
	}

	doRequest(t, client, http.MethodDelete, base+"/api/surveys/"+createResp.Survey.ID, token, nil, nil)

	req, err := http.NewRequest(http.MethodGet, base+"/api/surveys/"+createResp.Survey.ID, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("get after delete failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("get after delete status %d body %s", resp.StatusCode, string(body))
	}
}

func doRequest(t *testing.T, client *http.Client, method, url, token string, body any, out any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if strings.TrimSpace(token) != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d for %s: %s", resp.StatusCode, url, string(bodyBytes))
	}
	if out != nil {
		decoder := json.NewDecoder(resp.Body)
		if err := decoder.Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
}
