package updater

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

const githubAPIURL = "https://api.github.com/repos/okabrink/creator-scout/releases/latest"

type GithubRelease struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// CheckForUpdate compares the running version against the latest GitHub
// release and replaces the binary in place when a newer one exists.
func CheckForUpdate(currentVersion string) error {
	release, err := getLatestRelease()
	if err != nil {
		return fmt.Errorf("failed to get latest release: %w", err)
	}

	if !strings.HasPrefix(currentVersion, "v") {
		currentVersion = "v" + currentVersion
	}

	if release.TagName == currentVersion {
		fmt.Println("You are already on the latest version.")
		return nil
	}

	fmt.Printf("New version available: %s\n", release.TagName)
	return updateBinary(release)
}

func getLatestRelease() (*GithubRelease, error) {
	resp, err := http.Get(githubAPIURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var release GithubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, err
	}
	return &release, nil
}

func updateBinary(release *GithubRelease) error {
	assetName := fmt.Sprintf("creator-scout_%s_%s_%s.tar.gz",
		strings.TrimPrefix(release.TagName, "v"), runtime.GOOS, runtime.GOARCH)

	var downloadURL string
	for _, asset := range release.Assets {
		if asset.Name == assetName {
			downloadURL = asset.BrowserDownloadURL
			break
		}
	}
	if downloadURL == "" {
		return fmt.Errorf("no suitable binary found for your system")
	}

	fmt.Println("Downloading new version...")
	resp, err := http.Get(downloadURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tempDir, err := os.MkdirTemp("", "creator-scout-update")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tempDir)

	binPath, err := extractBinary(resp.Body, tempDir)
	if err != nil {
		return err
	}

	execPath, err := os.Executable()
	if err != nil {
		return err
	}
	if err := os.Chmod(binPath, 0755); err != nil {
		return err
	}

	if runtime.GOOS == "windows" {
		return swapOnWindows(tempDir, binPath, execPath)
	}

	if err := os.Rename(binPath, execPath); err != nil {
		return err
	}
	fmt.Println("Update successful. Please restart the application.")
	return nil
}

// extractBinary pulls the creator-scout binary out of the release tarball.
func extractBinary(r io.Reader, tempDir string) (string, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return "", err
	}
	defer gzr.Close()

	tr := tar.NewReader(gzr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if header.Typeflag != tar.TypeReg || !strings.HasPrefix(header.Name, "creator-scout") {
			continue
		}

		outPath := filepath.Join(tempDir, filepath.Base(header.Name))
		outFile, err := os.Create(outPath)
		if err != nil {
			return "", err
		}
		if _, err := io.Copy(outFile, tr); err != nil {
			outFile.Close()
			return "", err
		}
		outFile.Close()
		return outPath, nil
	}
	return "", fmt.Errorf("binary not found in the archive")
}

// swapOnWindows defers the replacement to a batch script since a running
// executable cannot be overwritten there.
func swapOnWindows(tempDir, binPath, execPath string) error {
	updateScript := filepath.Join(tempDir, "update.bat")
	scriptContent := fmt.Sprintf(`@echo off
:loop
tasklist /FI "IMAGENAME eq %s" 2>NUL | find /I /N "%s">NUL
if "%%ERRORLEVEL%%"=="0" (
    timeout /t 1 >nul
    goto loop
)
move /Y "%s" "%s"
del "%s"
`, filepath.Base(execPath), filepath.Base(execPath), binPath, execPath, updateScript)

	if err := os.WriteFile(updateScript, []byte(scriptContent), 0755); err != nil {
		return err
	}
	if err := exec.Command("cmd", "/C", updateScript).Start(); err != nil {
		return err
	}
	fmt.Println("Update downloaded. It will be applied when you exit the program.")
	return nil
}
