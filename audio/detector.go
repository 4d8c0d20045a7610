package audio

import (
	"os/exec"
	"strconv"
)

// DetectBackend searches PATH for a player that reads raw PCM on stdin
// Priority: pacat > pw-cat > aplay > play (sox) > ffplay
func DetectBackend(rate int) (*BackendConfig, error) {
	r := strconv.Itoa(rate)

	if path, err := exec.LookPath("pacat"); err == nil {
		return &BackendConfig{
			Type: BackendPulse,
			Name: "pacat",
			Path: path,
			Args: []string{"--raw", "--format=s16le", "--rate=" + r, "--channels=2", "--playback"},
		}, nil
	}

	if path, err := exec.LookPath("pw-cat"); err == nil {
		return &BackendConfig{
			Type: BackendPipeWire,
			Name: "pw-cat",
			Path: path,
			Args: []string{"--playback", "--format=s16", "--rate=" + r, "--channels=2", "-"},
		}, nil
	}

	if path, err := exec.LookPath("aplay"); err == nil {
		return &BackendConfig{
			Type: BackendALSA,
			Name: "aplay",
			Path: path,
			Args: []string{"-t", "raw", "-f", "S16_LE", "-r", r, "-c", "2", "-q"},
		}, nil
	}

	if path, err := exec.LookPath("play"); err == nil {
		return &BackendConfig{
			Type: BackendSoX,
			Name: "sox",
			Path: path,
			Args: []string{"-t", "raw", "-e", "signed", "-b", "16", "-c", "2", "-r", r, "-", "-d", "-q"},
		}, nil
	}

	if path, err := exec.LookPath("ffplay"); err == nil {
		return &BackendConfig{
			Type: BackendFFplay,
			Name: "ffplay",
			Path: path,
			Args: []string{"-nodisp", "-autoexit", "-f", "s16le", "-ac", "2", "-ar", r, "-i", "pipe:0", "-loglevel", "quiet"},
		}, nil
	}

	return nil, ErrNoAudioBackend
}
