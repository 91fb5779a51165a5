package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/targets/internal/app"
	"go.trai.ch/targets/internal/core/domain"
)

const environmentHelp = "Environment values come from flags, then from the env file, then from defaults:\n" +
	"the host platform is detected, the target platform follows the host,\n" +
	"the configuration is Development and the origin is CommandLine."

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [kinds...]",
		Short: "Resolve target kinds for one environment",
		Long: "Resolve target kinds against one environment and record the descriptors in " +
			domain.DefaultManifestPath() + ".\n\n" + environmentHelp,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			return c.app.Resolve(cmd.Context(), cmd.OutOrStdout(), args, resolveOptions(cmd))
		},
	}
	addResolveFlags(cmd)
	return cmd
}

func addResolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("platform", "p", "", "Target platform (Win64, Linux, LinuxArm64, Mac, IOS, Android)")
	cmd.Flags().String("host-platform", "", "Host platform (defaults to the running system)")
	cmd.Flags().StringP("configuration", "c", "", "Build configuration (Debug, Development, Shipping, Test)")
	cmd.Flags().String("origin", "", "Invocation origin (CommandLine, Editor, Automation)")
	cmd.Flags().String("env-file", domain.EnvFileName, "File holding TARGETS_* environment defaults")
	cmd.Flags().StringP("format", "o", app.FormatText, "Output format: text or json")
	cmd.Flags().IntP("parallel", "j", 0, "Maximum kinds resolved concurrently (0 uses the number of CPUs)")
	cmd.Flags().Bool("no-manifest", false, "Do not record descriptors in the manifest")
}

func resolveOptions(cmd *cobra.Command) app.ResolveOptions {
	platform, _ := cmd.Flags().GetString("platform")
	hostPlatform, _ := cmd.Flags().GetString("host-platform")
	configuration, _ := cmd.Flags().GetString("configuration")
	origin, _ := cmd.Flags().GetString("origin")
	envFile, _ := cmd.Flags().GetString("env-file")
	format, _ := cmd.Flags().GetString("format")
	parallel, _ := cmd.Flags().GetInt("parallel")
	noManifest, _ := cmd.Flags().GetBool("no-manifest")

	return app.ResolveOptions{
		Platform:      platform,
		HostPlatform:  hostPlatform,
		Configuration: configuration,
		Origin:        origin,
		EnvFile:       envFile,
		Format:        format,
		Parallelism:   parallel,
		NoManifest:    noManifest,
	}
}
