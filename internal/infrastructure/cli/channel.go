package cli

import (
	"fmt"

	"github.com/felixgeelhaar/cadence/pkg/domain/schedule"
	"github.com/spf13/cobra"
)

var channelCmd = &cobra.Command{
	Use:   "channel",
	Short: "Manage distribution channels",
}

// Flag variables for channel add
var (
	channelType      string
	channelFrequency string
	channelDays      []string
	channelTime      string
)

var channelAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Register a new channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		contentType, err := schedule.ParseContentType(channelType)
		if err != nil {
			return err
		}

		posting := schedule.PostingSchedule{
			Frequency:     channelFrequency,
			PreferredDays: channelDays,
			PreferredTime: channelTime,
		}

		channel, err := services.Channel.AddChannel(args[0], contentType, posting)
		if err != nil {
			return MapError(fmt.Errorf("failed to add channel: %w", err))
		}

		fmt.Printf("Added channel %s (%s, %s)\n", channel.Name, channel.ContentType, channel.ID)
		return nil
	},
}

var channelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all channels",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		channels, err := services.Channel.ListChannels()
		if err != nil {
			return MapError(err)
		}

		if len(channels) == 0 {
			fmt.Println("No channels yet. Run 'cadence channel add <name>'.")
			return nil
		}

		fmt.Printf("%-10s %-20s %-12s %-10s %s\n", "ID", "NAME", "TYPE", "STATUS", "CADENCE")
		for _, c := range channels {
			status := "active"
			if !c.IsActive {
				status = "archived"
			}
			cadence := c.PostingSchedule.Frequency
			if cadence == "" {
				cadence = "-"
			}
			fmt.Printf("%-10s %-20s %-12s %-10s %s\n", c.ID, c.Name, c.ContentType, status, cadence)
		}
		return nil
	},
}

var channelArchiveCmd = &cobra.Command{
	Use:   "archive <id|name>",
	Short: "Archive a channel so new tasks cannot target it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if err := services.Channel.ArchiveChannel(args[0]); err != nil {
			return MapError(fmt.Errorf("failed to archive channel: %w", err))
		}
		fmt.Printf("Channel %s archived. Existing tasks keep their lifecycle.\n", args[0])
		return nil
	},
}

var channelRestoreCmd = &cobra.Command{
	Use:   "restore <id|name>",
	Short: "Restore an archived channel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}
		if err := services.Channel.RestoreChannel(args[0]); err != nil {
			return MapError(fmt.Errorf("failed to restore channel: %w", err))
		}
		fmt.Printf("Channel %s restored.\n", args[0])
		return nil
	},
}

func init() {
	channelAddCmd.Flags().StringVarP(&channelType, "type", "t", "video",
		"Content type (video, short, livestream, post, podcast, newsletter)")
	channelAddCmd.Flags().StringVar(&channelFrequency, "frequency", "",
		"Posting frequency, e.g. weekly or biweekly")
	channelAddCmd.Flags().StringSliceVar(&channelDays, "days", nil,
		"Preferred posting days, e.g. --days Tuesday,Friday")
	channelAddCmd.Flags().StringVar(&channelTime, "time", "",
		"Preferred posting time as HH:MM")

	channelCmd.AddCommand(channelAddCmd)
	channelCmd.AddCommand(channelListCmd)
	channelCmd.AddCommand(channelArchiveCmd)
	channelCmd.AddCommand(channelRestoreCmd)
	RootCmd.AddCommand(channelCmd)
}
