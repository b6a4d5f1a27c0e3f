package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/plateseries/matriculas/internal/series"
)

// tweetPause spaces consecutive tweets to stay inside posting rate limits.
const tweetPause = 2 * time.Second

// TwitterNotifier posts new series records to Twitter
type TwitterNotifier struct {
	client *twitter.Client
	pause  time.Duration
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables.
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)

	return &TwitterNotifier{
		client: twitter.NewClient(httpClient),
		pause:  tweetPause,
	}, nil
}

// Notify posts one tweet per record
func (n *TwitterNotifier) Notify(records []series.Record) error {
	for i, rec := range records {
		tweet := formatTweet(rec)

		_, _, err := n.client.Statuses.Update(tweet, nil)
		if err != nil {
			return fmt.Errorf("posting tweet for %s: %w", rec.Key(), err)
		}

		if i < len(records)-1 {
			time.Sleep(n.pause)
		}
	}

	return nil
}

// formatTweet formats a record as a tweet
func formatTweet(rec series.Record) string {
	tweet := "🚗 Nueva serie de matrículas\n\n"

	if rec.Month != series.UnknownMonth {
		tweet += fmt.Sprintf("📅 %s %d\n", rec.Month, rec.Year)
	} else {
		tweet += fmt.Sprintf("📅 %d\n", rec.Year)
	}
	tweet += fmt.Sprintf("🔢 Última serie: %s\n", rec.End)

	tweet += "\n🔗 matriculasdelmundo.com/espana.html\n"
	tweet += "\n#matriculas #España"

	// Twitter limit is 280 characters
	if len(tweet) > 280 {
		tweet = tweet[:277] + "..."
	}

	return tweet
}
