package tui

import (
	"fmt"
	"strings"

	"mylittlepric-cli/internal/api"
	"mylittlepric-cli/internal/chat"

	"github.com/charmbracelet/glamour"
)

// ─── Welcome Screen ─────────────────────────────────────────────────────────

func renderWelcome(version, server string, width int) string {
	titleLine := logoTitleStyle.Render("MyLittlePric CLI") + " " + versionStyle.Render("v"+version)

	var infoLine string
	if server == "" {
		infoLine = welcomeHintStyle.Render("Run /set server <url> to get started")
	} else {
		serverDisplay := server
		if len(serverDisplay) > 48 {
			serverDisplay = serverDisplay[:45] + "..."
		}
		infoLine = welcomeInfoLabel.Render(serverDisplay)
	}

	tag := logoTagStyle.Render(priceTagArt())
	return fmt.Sprintf("\n%s\n%s\n%s\n", tag, titleLine, infoLine)
}

func priceTagArt() string {
	return strings.Join([]string{
		`   ▄▄▄▄▄▄▄▄▄▄▄`,
		`  ▐  $ ◉      ▀▄`,
		`  ▐  mylittlepric ▌`,
		`   ▀▀▀▀▀▀▀▀▀▀▀▀▀`,
	}, "\n")
}

// ─── Markdown ───────────────────────────────────────────────────────────────

func newMarkdownRenderer(width int) *glamour.TermRenderer {
	if width <= 0 || width > 100 {
		width = 100
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return nil
	}
	return r
}

// renderMarkdown falls back to the raw text when glamour is unavailable.
func renderMarkdown(r *glamour.TermRenderer, text string) string {
	if r == nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

// ─── Conversation ───────────────────────────────────────────────────────────

func renderUserMessage(text string) string {
	return promptSymbol.Render("❯ ") + userMsgStyle.Render(text)
}

func renderAgentMessage(r *glamour.TermRenderer, msg chat.Message) string {
	var s strings.Builder
	s.WriteString(agentLabelStyle.Render("● assistant") + "\n")
	s.WriteString(renderMarkdown(r, msg.Content))

	if len(msg.Products) > 0 {
		s.WriteString("\n" + renderProducts(msg.Products, msg.TotalProducts))
	}
	if len(msg.Buttons) > 0 {
		s.WriteString("\n" + renderButtons(msg.Buttons))
		if msg.Kind == chat.KindInteractive {
			s.WriteString("\n" + hintBarStyle.Render("  pick an option: type its number and press Enter"))
		}
	}
	return s.String()
}

func renderButtons(buttons []string) string {
	var lines []string
	for i, label := range buttons {
		lines = append(lines, "  "+buttonIndexStyle.Render(fmt.Sprintf("%d.", i+1))+" "+buttonStyle.Render(label))
	}
	return strings.Join(lines, "\n")
}

func renderProducts(products []api.Product, total int) string {
	var lines []string
	for _, p := range products {
		line := "  " + productNameStyle.Render(p.Name)
		if p.Price != "" {
			line += "  " + productPriceStyle.Render(priceLabel(p.Price))
		}
		lines = append(lines, line)
		if p.Description != "" {
			lines = append(lines, "    "+productMetaStyle.Render(p.Description))
		}
		if p.DetailURL != "" {
			lines = append(lines, "    "+productMetaStyle.Render(p.DetailURL))
		}
	}
	if total > len(products) {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("  … %d more in the full catalog", total-len(products))))
	}
	return strings.Join(lines, "\n")
}

func priceLabel(price string) string {
	if strings.HasPrefix(price, "$") || price == "" {
		return price
	}
	if price[0] >= '0' && price[0] <= '9' {
		return "$" + price
	}
	return price
}

// ─── Stream events ──────────────────────────────────────────────────────────

// renderEvent turns one classified stream event into a printable line.
// An empty result means the event has no inline rendering (the query
// pseudo-event: the submitted message is already on screen).
func renderEvent(ev api.StreamEvent) string {
	switch ev.Kind {
	case api.KindQuery:
		return ""
	case api.KindIntent:
		return eventIntentStyle.Render("  ⟳ intent · " + eventText(ev))
	case api.KindCategory:
		return eventCategoryStyle.Render("  ▤ category · " + eventText(ev))
	case api.KindSubcategory:
		return eventCategoryStyle.Render("  ▤ preference · " + eventText(ev))
	case api.KindProductInfo:
		return renderProductInfo(ev)
	case api.KindRecommendedProducts:
		if rec, ok := ev.Data.(api.Recommendation); ok {
			header := eventSearchStyle.Render(fmt.Sprintf("  📦 %d recommended", rec.Total))
			return header + "\n" + renderProducts(rec.Products, rec.Total)
		}
		return eventSearchStyle.Render("  📦 recommended products")
	case api.KindError:
		return errorMsgStyle.Render("  ✗ " + eventText(ev))
	default:
		return dimStyle.Render("  · " + ev.Kind + " · " + eventText(ev))
	}
}

func renderProductInfo(ev api.StreamEvent) string {
	summary, ok := ev.Data.(api.ProductSummary)
	if !ok {
		return eventSearchStyle.Render("  🔎 " + eventText(ev))
	}

	var s strings.Builder
	if summary.Count > 0 {
		s.WriteString(eventSearchStyle.Render(fmt.Sprintf("  🔎 %d products found", summary.Count)))
	} else {
		s.WriteString(eventSearchStyle.Render("  🔎 catalog search"))
	}
	for _, item := range summary.Items {
		s.WriteString("\n    " + productNameStyle.Render(item.Name) + "  " + productPriceStyle.Render("$"+item.Price))
	}
	return s.String()
}

// eventText flattens an event payload to something printable.
func eventText(ev api.StreamEvent) string {
	if s, ok := ev.Text(); ok {
		return s
	}
	return fmt.Sprintf("%v", ev.Data)
}
