package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kiesman99/mosaic/internal/composer"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mosaic",
	Short: "Rebuild an image out of the tiles of another image",
	Long: `mosaic cuts a source image into small rectangular tiles and rearranges
them so that the result resembles a model image.

The model is scaled so that neither side exceeds 720 pixels, the source is
resized to the same size, and every tile of the source is used at most once.
The result is written as JPEG.

Examples:
  # Rebuild portrait.jpg out of the tiles of landscape.jpg
  mosaic --model portrait.jpg --source landscape.jpg -o out.jpg

  # Use larger 8x6 tiles
  mosaic --model portrait.jpg --source landscape.jpg --frag-width 8 --frag-height 6 -o out.jpg

  # Start HTTP server
  mosaic serve --port 8080`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(viper.GetString("log.level"))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Without inputs there is nothing to compose
		if viper.GetString("model") == "" && viper.GetString("source") == "" {
			return cmd.Help()
		}
		return runCompose(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mosaic.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug|info|warn|error)")

	// Input and output
	rootCmd.Flags().StringP("model", "m", "", "image to imitate (required)")
	rootCmd.Flags().StringP("source", "s", "", "image providing the tiles (required)")
	rootCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	// Composition options
	rootCmd.Flags().Int("frag-width", composer.DefaultCLIFragment, "tile width in pixels")
	rootCmd.Flags().Int("frag-height", composer.DefaultCLIFragment, "tile height in pixels")
	rootCmd.Flags().IntP("quality", "q", 90, "JPEG quality of the result (1-100)")

	// Bind flags to viper for root command
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("model", rootCmd.Flags().Lookup("model"))
	viper.BindPFlag("source", rootCmd.Flags().Lookup("source"))
	viper.BindPFlag("output", rootCmd.Flags().Lookup("output"))
	viper.BindPFlag("cli.frag-width", rootCmd.Flags().Lookup("frag-width"))
	viper.BindPFlag("cli.frag-height", rootCmd.Flags().Lookup("frag-height"))
	viper.BindPFlag("mosaic.jpeg-quality", rootCmd.Flags().Lookup("quality"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".mosaic" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mosaic")
	}

	// MOSAIC_SERVER_PORT overrides server.port
	viper.SetEnvPrefix("mosaic")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func setupLogging(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)
	return nil
}

func runCompose(cmd *cobra.Command, args []string) error {
	modelPath := viper.GetString("model")
	sourcePath := viper.GetString("source")
	if modelPath == "" {
		return fmt.Errorf("model image is required (use --model)")
	}
	if sourcePath == "" {
		return fmt.Errorf("source image is required (use --source)")
	}

	opts := composer.DefaultOptions()
	opts.FragWidth = viper.GetInt("cli.frag-width")
	opts.FragHeight = viper.GetInt("cli.frag-height")
	opts.JPEGQuality = viper.GetInt("mosaic.jpeg-quality")
	if opts.FragWidth < 1 || opts.FragHeight < 1 {
		return fmt.Errorf("fragment size must be positive, got %dx%d", opts.FragWidth, opts.FragHeight)
	}

	modelData, err := os.ReadFile(modelPath)
	if err != nil {
		return fmt.Errorf("could not read model image: %w", err)
	}
	sourceData, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("could not read source image: %w", err)
	}

	output := viper.GetString("output")
	var w io.Writer
	if output == "" {
		// Refuse to dump binary data into a terminal
		if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			return fmt.Errorf("refusing to write image data to a terminal, use -o")
		}
		w = cmd.OutOrStdout()
	} else {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	log.WithFields(log.Fields{
		"model":  modelPath,
		"source": sourcePath,
		"frag":   fmt.Sprintf("%dx%d", opts.FragWidth, opts.FragHeight),
	}).Info("Composing mosaic")

	res, err := composer.ComposeBytes(sourceData, modelData, opts)
	if err != nil {
		return err
	}

	if _, err := w.Write(res.JPEG); err != nil {
		return fmt.Errorf("failed to write output image: %w", err)
	}

	log.WithFields(log.Fields{
		"width":    res.Width,
		"height":   res.Height,
		"filled":   res.Stats.Filled,
		"unfilled": res.Stats.Unmatched,
	}).Info("Wrote mosaic")
	return nil
}
