package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/controleopcoes/controleopcoes/internal/config"
	awsconfig "github.com/controleopcoes/controleopcoes/internal/config/aws"
	"github.com/controleopcoes/controleopcoes/internal/constants"
	apperrors "github.com/controleopcoes/controleopcoes/internal/errors"
	"github.com/controleopcoes/controleopcoes/internal/infra"
	"github.com/controleopcoes/controleopcoes/internal/logger"
	"github.com/controleopcoes/controleopcoes/internal/providers/aws/identity"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Provision the DynamoDB table",
	Long: `Create the application's DynamoDB table unless it already exists, then print
the remaining deployment checklist.

The table uses a composite string key (PK as partition key, SK as sort key)
and on-demand billing. The command only initiates creation and does not wait
for the table to become ACTIVE.

Examples:
  # Provision the default table in sa-east-1
  controleopcoes setup

  # Provision against DynamoDB Local
  controleopcoes setup --endpoint http://localhost:8000

  # Show what would be created
  controleopcoes setup --table-name AppControleOpcoesDev --dry-run`,
	Args: cobra.NoArgs,
	RunE: setupRun,
}

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the resolved table spec without calling AWS")
}

func setupRun(cmd *cobra.Command, _ []string) error {
	cfg, err := getConfigFromContext(cmd)
	if err != nil {
		return err
	}

	spec, err := cfg.TableSpec()
	if err != nil {
		return err
	}

	out := NewOutputWrapper()

	if dryRun {
		return NewSetupService(nil, out, slog.Default()).DryRun(spec)
	}

	ctx := cmd.Context()
	awsCfg, err := awsconfig.LoadSDKConfig(ctx, awsOptions(cfg))
	if err != nil {
		return apperrors.ErrInvalidConfig("failed to load AWS configuration", err)
	}

	_, credentialsSource := awsOptions(cfg).CredentialsProvider()
	slog.Debug("AWS configuration loaded", "context", map[string]string{
		"region":      awsCfg.Region,
		"credentials": string(credentialsSource),
	})

	service := NewSetupService(infra.NewAWSProvisioner(awsCfg, slog.Default()), out, slog.Default())
	if verbose {
		service.verbose = true
		if !cfg.HasEndpointOverride() {
			service.lookupCaller = func(ctx context.Context) (*identity.Caller, error) {
				return identity.GetCaller(ctx, &awsCfg, slog.Default())
			}
		}
	}

	slog.Debug("starting provisioning", logger.GetDeadlineInfo(ctx)...)

	return service.Run(ctx, spec, cfg.Endpoint)
}

func awsOptions(cfg *config.Config) awsconfig.Options {
	return awsconfig.Options{
		Region:          cfg.Region,
		Endpoint:        cfg.Endpoint,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		SessionToken:    cfg.SessionToken,
	}
}

// SetupService handles table provisioning and its terminal report.
type SetupService struct {
	provisioner  infra.Provisioner
	output       OutputInterface
	logger       *slog.Logger
	verbose      bool
	lookupCaller func(ctx context.Context) (*identity.Caller, error)
}

// NewSetupService creates a new SetupService with the provided dependencies.
func NewSetupService(provisioner infra.Provisioner, outputter OutputInterface, log *slog.Logger) *SetupService {
	return &SetupService{
		provisioner: provisioner,
		output:      outputter,
		logger:      log,
	}
}

// Run provisions the table described by spec and prints one line per phase
// followed by the deployment checklist. The checklist is printed whatever the outcome.
func (s *SetupService) Run(ctx context.Context, spec *infra.TableSpec, endpoint string) error {
	s.output.Header(fmt.Sprintf("--- Setting up Infrastructure for %s ---", constants.DisplayName))

	if s.verbose {
		s.describeTarget(ctx, spec, endpoint)
	}

	result, err := s.provisioner.EnsureTable(ctx, spec, infra.OnCreate(func(spec *infra.TableSpec) {
		s.output.Infof("Creating table '%s' in %s...", spec.TableName, spec.Region)
	}))
	s.report(result, err, endpoint)

	s.output.Blank()
	s.output.Println("Next Steps:")
	s.output.NumberedList(constants.NextSteps)

	return err
}

// DryRun prints the resolved spec as YAML without calling AWS.
func (s *SetupService) DryRun(spec *infra.TableSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(spec)
	if err != nil {
		return fmt.Errorf("failed to render table spec: %w", err)
	}

	s.output.Infof("Dry run: table %s would be provisioned in %s with", spec.TableName, spec.Region)
	s.output.Printf("%s", data)
	return nil
}

func (s *SetupService) describeTarget(ctx context.Context, spec *infra.TableSpec, endpoint string) {
	s.output.KeyValue("CLI build", *constants.GetVersion())
	s.output.KeyValue("Region", spec.Region)
	s.output.KeyValue("Table", spec.TableName)
	if endpoint != "" {
		s.output.KeyValue("Endpoint", endpoint)
	}

	if s.lookupCaller == nil {
		return
	}

	caller, err := s.lookupCaller(ctx)
	if err != nil {
		s.logger.Debug("caller identity lookup failed", "error", err)
		s.output.Warningf("Could not determine AWS account: %v", err)
		return
	}
	s.output.KeyValue("AWS account", caller.AccountID)
}

func (s *SetupService) report(result *infra.Result, err error, endpoint string) {
	if result == nil {
		result = &infra.Result{Outcome: infra.OutcomeFailed}
		if err != nil {
			result.Message = err.Error()
		}
	}

	switch result.Outcome {
	case infra.OutcomeAlreadyExists:
		s.output.Successf("Table '%s' already exists in %s.", result.TableName, result.Region)
	case infra.OutcomeCreated:
		s.output.Successf("Table creation initiated. ARN: %s", result.TableARN)
		s.output.Infof("NOTE: It may take a moment to become active.")
	default:
		s.logFailure(err)
		s.output.Errorf("Error creating table: %s", result.Message)
		if endpoint != "" && apperrors.IsProvisioningError(err) && apperrors.IsConnectionRefused(err) {
			s.output.Infof("%s", constants.DynamoDBLocalHint)
		}
	}
}

// logFailure records the error code and cause of a failed run. The service
// error code is only present for failed control-plane calls.
func (s *SetupService) logFailure(err error) {
	if err == nil {
		return
	}

	attrs := []any{
		"error_code", apperrors.GetErrorCode(err),
		"message", apperrors.GetErrorMessage(err),
		"details", apperrors.GetErrorDetails(err),
	}
	if apperrors.IsProvisioningError(err) {
		attrs = append(attrs, "api_error_code", apperrors.APIErrorCode(err))
	}
	s.logger.Debug("provisioning failed", attrs...)
}
