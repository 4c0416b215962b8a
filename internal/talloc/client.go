package talloc

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"
)

const (
	currentTermEndpoint  = "https://cgi.cse.unsw.edu.au/~talloc/api/v1/term/current"
	applicationsEndpoint = "https://cgi.cse.unsw.edu.au/~talloc/api/v1/terms/%s/applications"
	jwtFile              = "jwt"
)

func readJwt() (string, error) {
	raw, err := os.ReadFile(jwtFile)
	if err != nil {
		return "", fmt.Errorf("couldn't read talloc jwt: %w\nCreate a file `jwt` with your talloc token from https://cgi.cse.unsw.edu.au/~talloc/admin/api", err)
	}
	jwt := strings.TrimSpace(string(raw))
	if jwt == "" {
		return "", fmt.Errorf("couldn't read talloc jwt: file is empty")
	}
	return jwt, nil
}

func makeRequest(client *http.Client, jwt, endpoint string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to make talloc request: %w", err)
	}
	req.Header.Set("x-jwt-auth", jwt)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make talloc request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to make talloc request: %s returned %s", endpoint, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read talloc response: %w", err)
	}
	return body, nil
}

func extractTermID(termInfo []byte, log *zap.SugaredLogger) (string, error) {
	var term struct {
		TermID   json.Number `json:"term_id"`
		TermName string      `json:"term_name"`
	}
	if err := json.Unmarshal(termInfo, &term); err != nil || term.TermID.String() == "" {
		return "", fmt.Errorf("failed to parse talloc response: couldn't extract term_id/term_name")
	}

	log.Infof("Using talloc applications from term %s (code %s)", term.TermName, term.TermID)
	return term.TermID.String(), nil
}

func download(log *zap.SugaredLogger) ([]byte, error) {
	jwt, err := readJwt()
	if err != nil {
		return nil, err
	}

	client := &http.Client{}

	termInfo, err := makeRequest(client, jwt, currentTermEndpoint)
	if err != nil {
		return nil, err
	}
	termID, err := extractTermID(termInfo, log)
	if err != nil {
		return nil, err
	}

	log.Info("Downloading talloc applications, this may take a while...")
	applications, err := makeRequest(client, jwt, fmt.Sprintf(applicationsEndpoint, termID))
	if err != nil {
		return nil, err
	}
	log.Info("Download done")

	return applications, nil
}

// Fetch loads the applications, preferring the local cache
// unconditionally when it exists. A fresh download is cached verbatim
// so later runs are offline.
func Fetch(cachePath string, tolerateMissing bool, log *zap.SugaredLogger) (*Apps, error) {
	if raw, err := os.ReadFile(cachePath); err == nil {
		log.Infof("Using cached talloc download at %s", cachePath)

		apps, err := ParseApps(raw, tolerateMissing)
		if err != nil {
			return nil, fmt.Errorf("error reading cached talloc at %s: %w", cachePath, err)
		}
		return apps, nil
	}

	raw, err := download(log)
	if err != nil {
		return nil, err
	}

	apps, err := ParseApps(raw, tolerateMissing)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(cachePath, raw, 0o644); err != nil {
		return nil, fmt.Errorf("failed to save talloc cache: %w", err)
	}
	log.Infof("Cached download to %s", cachePath)

	return apps, nil
}
