package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"creative-radar/config"
	"creative-radar/eventbus"
	"creative-radar/events"
)

func newWatchCmd() *cobra.Command {
	var groupID string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream search events from Kafka",
		Long: `Subscribe to the search events topic and print one line per event
until interrupted. Requires KAFKA_BOOTSTRAP_SERVERS.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			brokers, err := eventbus.Brokers(config.GetSecrets())
			if err != nil {
				return err
			}
			bus, err := eventbus.NewKafkaEventBus(brokers)
			if err != nil {
				return err
			}
			defer bus.Close()

			topic := eventbus.SearchEventsTopic(config.GetConfig().Events)
			config.Logger.Infof("[watch] subscribing to %s as %s", topic.Base(), groupID)
			err = bus.Subscribe(cmd.Context(), groupID, topic, eventPrinter(cmd.OutOrStdout()))
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&groupID, "group", "radarctl-watch", "Kafka consumer group id")
	return cmd
}

// eventPrinter 는 알려진 이벤트만 출력하고 나머지는 무시(커밋)한다.
func eventPrinter(w io.Writer) eventbus.EventHandler {
	return func(ctx context.Context, ev eventbus.Event) error {
		switch events.EventType(ev.Type) {
		case events.SearchCompleted:
			v, err := eventbus.DecodeJSON[events.SearchCompletedEvent](ev)
			if err != nil {
				return err
			}
			statuses := make([]string, 0, len(v.Providers))
			for _, p := range v.Providers {
				statuses = append(statuses, fmt.Sprintf("%s:%s(%d)", p.Provider, p.Status, p.Results))
			}
			fmt.Fprintf(w, "%s completed %s results=%d providers=[%s] brief=%q\n",
				v.Timestamp.Local().Format("15:04:05"), v.SearchID, v.ResultCount, strings.Join(statuses, " "), v.Brief)
		case events.SearchDeleted:
			v, err := eventbus.DecodeJSON[events.SearchDeletedEvent](ev)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s deleted %s\n", v.Timestamp.Local().Format("15:04:05"), v.SearchID)
		}
		return nil
	}
}
