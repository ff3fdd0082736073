package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/hthennin/cfswap/internal/distribution"
	"github.com/hthennin/cfswap/internal/migrate"
	"github.com/hthennin/cfswap/internal/zone"
)

var version = "dev"

type config struct {
	Region           string `toml:"region"`
	RoleARN          string `toml:"role-arn"`
	BaseDelaySeconds int    `toml:"base-delay-seconds"`
	MaxJitterSeconds int    `toml:"max-jitter-seconds"`
	MaxAttempts      int    `toml:"max-attempts"`
}

func main() {
	configPath := flag.String("config", "cfswap.toml", "path to config file")
	region := flag.String("region", "", "AWS region override")
	roleARN := flag.String("role-arn", "", "IAM role to assume for the AWS calls")
	maxAttempts := flag.Int("max-attempts", 0, "give up after this many consecutive failed fetches (0 = keep trying)")
	dryRun := flag.Bool("dry-run", false, "validate and print the planned record changes, then exit")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		return
	}

	args := flag.Args()
	if len(args) != 4 {
		usage()
		os.Exit(1)
	}

	// Load config file
	cfg := loadConfig(*configPath)

	// CLI flags override config
	if *region != "" {
		cfg.Region = *region
	}
	if *roleARN != "" {
		cfg.RoleARN = *roleARN
	}
	if *maxAttempts != 0 {
		cfg.MaxAttempts = *maxAttempts
	}

	req, err := migrate.NewRequest(args[0], args[1], args[2], args[3])
	if err != nil {
		fatal("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsClientConfig(ctx, cfg)
	if err != nil {
		fatal("loading AWS config: %v", err)
	}
	cfClient := cloudfront.NewFromConfig(awsCfg)
	r53Client := route53.NewFromConfig(awsCfg)

	if *dryRun {
		snap, err := distribution.Validate(ctx, cfClient, req.DistributionID, req.Domain)
		if err != nil {
			fatal("validating distribution: %v", err)
		}
		decision := zone.Decision{Alias: req.Alias, Target: req.Domain, IPv6: snap.IPv6Enabled}
		fmt.Fprintf(os.Stderr, "Distribution %s serves %s (IPv6 enabled: %v)\n",
			req.DistributionID, snap.CanonicalDomain, snap.IPv6Enabled)
		for _, rrType := range decision.RecordTypes() {
			fmt.Printf("UPSERT %s %s -> %s (alias zone %s)\n",
				rrType, req.Alias, req.Domain, zone.CloudFrontAliasZoneID)
		}
		fmt.Fprintf(os.Stderr, "\nDry run complete. No changes made.\n")
		return
	}

	fmt.Fprintf(os.Stderr, "Waiting for alias %s to appear on distribution %s...\n", req.Alias, req.DistributionID)
	applied, err := migrate.Run(ctx, cfClient, r53Client, req, migrate.Options{
		BaseDelay:   time.Duration(cfg.BaseDelaySeconds) * time.Second,
		MaxJitter:   time.Duration(cfg.MaxJitterSeconds) * time.Second,
		MaxAttempts: cfg.MaxAttempts,
		Progress: func(attempt int, elapsed time.Duration) {
			fmt.Fprintf(os.Stderr, "Alias not present yet (attempt %d, %s elapsed)\n",
				attempt, elapsed.Round(time.Second))
		},
	})
	if err != nil {
		fatal("%v", err)
	}

	fmt.Fprintf(os.Stderr, "Updated %d record(s) in zone %s:\n", len(applied), req.HostedZoneID)
	for _, rrType := range applied {
		fmt.Fprintf(os.Stderr, "  %s %s -> %s\n", rrType, req.Alias, req.Domain)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: cfswap [flags] <distribution-id> <hosted-zone-id> <cloudfront-domain> <alias>

Waits for a CloudFront CNAME swap to complete, then updates the Route 53
alias records for <alias> to point at <cloudfront-domain>.

  distribution-id    ID of the distribution the alias is moving to
  hosted-zone-id     Route 53 hosted zone holding the alias records
  cloudfront-domain  canonical dxxxx.cloudfront.net domain of that distribution
  alias              alternate domain name being moved (e.g. www.example.com)

Flags:
`)
	flag.PrintDefaults()
}

// awsClientConfig builds the shared AWS config, optionally swapping in
// assumed-role credentials when the distribution or zone lives in
// another account.
func awsClientConfig(ctx context.Context, cfg config) (aws.Config, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, err
	}
	if cfg.RoleARN != "" {
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(awsCfg), cfg.RoleARN)
		awsCfg.Credentials = aws.NewCredentialsCache(provider)
	}
	return awsCfg, nil
}

func loadConfig(path string) config {
	var cfg config
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return cfg // No config file, use defaults/flags
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		fatal("reading config file %s: %v", path, err)
	}
	return cfg
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
