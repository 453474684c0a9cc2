package termination

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path"

	"github.com/jzelinskie/cobrautil/v2"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"

	log "github.com/authzed/namevalue/internal/logging"
)

const (
	terminationLogFlagName = "termination-log-path"
	terminationLogLimit    = 4096
)

// Report is the JSON payload written to the termination log.
type Report struct {
	Error    string            `json:"error"`
	Code     string            `json:"code"`
	Reason   string            `json:"reason,omitempty"`
	Domain   string            `json:"domain,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// NewReport builds a report for errors carrying a gRPC status, such as those
// of the nverrors package. It returns false for any other error.
func NewReport(err error) (Report, bool) {
	if err == nil {
		return Report{}, false
	}

	st, ok := status.FromError(err)
	if !ok {
		return Report{}, false
	}

	report := Report{
		Error: err.Error(),
		Code:  st.Code().String(),
	}
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			report.Reason = info.GetReason()
			report.Domain = info.GetDomain()
			report.Metadata = info.GetMetadata()
		}
	}
	return report, true
}

// PublishError returns a new wrapping cobra run function that executes the provided argument runFunc, and
// writes to disk a report of the error returned by the latter if it carries a gRPC status.
func PublishError(runFunc cobrautil.CobraRunFunc) cobrautil.CobraRunFunc {
	return func(cmd *cobra.Command, args []string) error {
		runFuncErr := runFunc(cmd, args)
		report, ok := NewReport(runFuncErr)
		if !ok {
			return runFuncErr
		}

		ctx := context.Background()
		if cmd.Context() != nil {
			ctx = cmd.Context()
		}
		terminationLogPath := cobrautil.MustGetString(cmd, terminationLogFlagName)
		if terminationLogPath == "" {
			return runFuncErr
		}

		bytes, err := json.Marshal(report)
		if err != nil {
			log.Ctx(ctx).Error().Err(fmt.Errorf("unable to marshall termination log: %w", err)).Msg("failed to report termination log")
			return runFuncErr
		}

		if len(bytes) > terminationLogLimit {
			log.Ctx(ctx).Warn().Msg("termination log exceeds 4096 bytes limit, metadata will be truncated")
			report.Metadata = nil
			bytes, err = json.Marshal(report)
			if err != nil {
				return runFuncErr
			}
		}

		if _, err := os.Stat(path.Dir(terminationLogPath)); os.IsNotExist(err) {
			if mkdirErr := os.MkdirAll(path.Dir(terminationLogPath), 0o700); mkdirErr != nil {
				log.Ctx(ctx).Error().Err(fmt.Errorf("unable to create directory for termination log: %w", mkdirErr)).Msg("failed to report termination log")
				return runFuncErr
			}
		}
		if err := os.WriteFile(terminationLogPath, bytes, 0o600); err != nil {
			log.Ctx(ctx).Error().Err(fmt.Errorf("unable to write terminationlog file: %w", err)).Msg("failed to report termination log")
		}
		return runFuncErr
	}
}

// RegisterFlags registers the termination log flag
func RegisterFlags(flagset *flag.FlagSet) {
	flagset.String(terminationLogFlagName,
		"",
		"define the path to the termination log file, which contains a JSON payload describing the error that ended the command - disabled by default",
	)
}
