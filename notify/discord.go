// Package notify posts best-effort Discord webhook messages. Delivery
// failures are logged and swallowed; the monitor loop must never stall or
// die because an alert did not land.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"tcg_monitor/httputil"
)

const webhookUsername = "TCGPlayer Last Sold Monitor"

type DiscordNotifier struct {
	clients    *httputil.Clients
	webhookURL string
}

func NewDiscordNotifier(clients *httputil.Clients, webhookURL string) *DiscordNotifier {
	return &DiscordNotifier{clients: clients, webhookURL: webhookURL}
}

// SendAlert delivers one message to the configured webhook. A missing
// webhook URL is a silent no-op.
func (n *DiscordNotifier) SendAlert(message string) {
	if n.webhookURL == "" {
		return
	}

	resp, err := n.clients.Webhook.R().
		SetBody(map[string]string{
			"content":  message,
			"username": webhookUsername,
		}).
		Post(n.webhookURL)
	if err != nil {
		log.Printf("Failed to send Discord alert: %v", err)
		return
	}
	if resp.IsError() {
		log.Printf("Discord alert rejected: %s", resp.Status())
		return
	}
	log.Println("Discord alert sent successfully")
}

// SendStartup announces which cards are being watched and how often.
func (n *DiscordNotifier) SendStartup(pages []string, interval string) {
	if n.webhookURL == "" {
		log.Println("No Discord webhook configured - skipping startup notification")
		return
	}

	var names []string
	for _, url := range pages {
		names = append(names, fmt.Sprintf("• %s", CardNameFromURL(url)))
	}

	message := fmt.Sprintf(`🚀 **TCGPlayer Monitor Started!**

📊 **Monitoring %d cards:**
%s

⏰ **Check interval:** Every %s
🔔 **Alerts:** New sales only
📈 **Tracking:** Last sold prices

✅ Ready to monitor! You'll get notified when new sales are detected.`,
		len(pages), strings.Join(names, "\n"), interval)

	n.SendAlert(message)
}

// SendGraph uploads a captured price-history image alongside a summary line.
func (n *DiscordNotifier) SendGraph(imagePath string, imageData []byte, pageURL string) error {
	if n.webhookURL == "" {
		return fmt.Errorf("no webhook URL configured")
	}

	message := fmt.Sprintf("📊 **TCGPlayer Price Graph Captured**\n\n🃏 **Card:** %s\n🔗 **URL:** %s",
		CardNameFromURL(pageURL), pageURL)
	payload, err := json.Marshal(map[string]string{
		"content":  message,
		"username": webhookUsername,
	})
	if err != nil {
		return fmt.Errorf("failed to build payload: %w", err)
	}

	resp, err := n.clients.Upload.R().
		SetFileReader("file", imagePath, bytes.NewReader(imageData)).
		SetFormData(map[string]string{"payload_json": string(payload)}).
		Post(n.webhookURL)
	if err != nil {
		return fmt.Errorf("failed to upload graph: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("graph upload rejected: %s", resp.Status())
	}
	return nil
}

// CardNameFromURL turns a /product/<id>/<slug> URL into a readable card
// name, or "Unknown Card" when the URL has no product slug.
func CardNameFromURL(url string) string {
	idx := strings.Index(url, "product/")
	if idx == -1 {
		return "Unknown Card"
	}
	parts := strings.Split(url[idx+len("product/"):], "/")
	if len(parts) < 2 {
		return "Unknown Card"
	}
	slug := parts[1]
	if i := strings.IndexAny(slug, "?#"); i != -1 {
		slug = slug[:i]
	}
	if slug == "" {
		return "Unknown Card"
	}
	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
