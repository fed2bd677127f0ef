package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"ci-computer-dashboard/models"
	"ci-computer-dashboard/utils"
)

const scrapeTimeout = 45 * time.Second

// CartCSVHeader is the column order of the exported cart table
var CartCSVHeader = []string{
	"Product Name", "SKU", "Part No.", "Unit Price", "Quantity", "Subtotal",
	"Voltage (V)", "Current (A)", "Power (W)", "Notes",
}

var (
	itemRowClasses   = []string{"cart-item", "item-row"}
	itemBlockClasses = []string{"cart-item", "product-item"}
	cartTableClasses = []string{"cart", "shopping-cart", "data-table"}
	quantityPattern  = regexp.MustCompile(`\d+`)
)

// ScraperService extracts product lines from shopping cart pages
type ScraperService struct {
	chromePath string
}

// NewScraperService creates a new ScraperService
func NewScraperService(chromePath string) *ScraperService {
	return &ScraperService{chromePath: chromePath}
}

// Ensure ScraperService implements ScraperServiceInterface
var _ ScraperServiceInterface = (*ScraperService)(nil)

// ScrapeFile parses a cart page saved to disk
func (s *ScraperService) ScrapeFile(path string) ([]models.CartItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cart page %s: %w", path, err)
	}
	defer f.Close()

	return ParseCartHTML(f)
}

// ScrapeURL loads a cart page in headless Chrome and parses the rendered DOM.
// Cart pages usually need session cookies, so saving the page by hand is often more reliable.
func (s *ScraperService) ScrapeURL(ctx context.Context, url string) ([]models.CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, scrapeTimeout)
	defer cancel()

	browserCtx, browserCancel := newBrowserContext(ctx, s.chromePath)
	defer browserCancel()

	log.Printf("🔍 ScrapeURL: %s", url)
	var page string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &page),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cart page: %w", err)
	}

	return ParseCartHTML(strings.NewReader(page))
}

// ParseCartHTML extracts cart items from a cart page.
// Three layouts are tried in order: classed item rows or blocks, rows of a cart table,
// then divs labelled "SKU:". Items without a name, or with no SKU, price or subtotal, are dropped.
func ParseCartHTML(r io.Reader) ([]models.CartItem, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cart page: %w", err)
	}

	order := elementsInOrder(doc)
	position := make(map[*html.Node]int, len(order))
	for i, n := range order {
		position[n] = i
	}

	candidates := findCartCandidates(order)
	log.Printf("🔍 Found %d potential cart items", len(candidates))

	var items []models.CartItem
	for i, node := range candidates {
		item := models.CartItem{Quantity: 1}

		if node.DataAtom == atom.Tr {
			cells := findAll(node, func(n *html.Node) bool {
				return n.DataAtom == atom.Td || n.DataAtom == atom.Th
			})
			if len(cells) >= 4 {
				item.ProductName = textOf(cells[0])
				item.SKU = ExtractSKU(textOf(cells[1]))
				item.UnitPrice = utils.ExtractPrice(textOf(cells[2]))
				item.Quantity = ExtractQuantity(textOf(cells[3]))
				if len(cells) > 4 {
					item.Subtotal = utils.ExtractPrice(textOf(cells[4]))
				}
			}
		} else {
			parent := closestAncestor(node, atom.Div)
			if parent == nil {
				continue
			}

			item.ProductName = fmt.Sprintf("Product %d", i+1)
			if prev := previousSibling(parent, atom.Div); prev != nil {
				item.ProductName = textOf(prev)
			}

			item.SKU = strings.TrimSpace(strings.ReplaceAll(textOf(node), "SKU:", ""))

			at := position[node]
			if el := findNext(order, at, labelledDiv("Part No.:")); el != nil {
				item.PartNo = strings.TrimSpace(strings.ReplaceAll(textOf(el), "Part No.:", ""))
			}
			if el := findNext(order, at, labelledDiv("Unit Price:")); el != nil {
				if span := findNext(order, position[el], isElement(atom.Span)); span != nil {
					item.UnitPrice = textOf(span)
				}
			}
			if el := findPrevious(order, position[parent], labelledDiv("x")); el != nil {
				before, _, _ := strings.Cut(textOf(el), "x")
				if q, err := strconv.Atoi(strings.TrimSpace(before)); err == nil {
					item.Quantity = q
				}
			}
			if el := findNext(order, at, labelledDiv("Subtotal:")); el != nil {
				if span := findNext(order, position[el], isElement(atom.Span)); span != nil {
					item.Subtotal = textOf(span)
				}
			}
		}

		if item.ProductName != "" && (item.SKU != "" || item.UnitPrice != "" || item.Subtotal != "") {
			items = append(items, item)
		}
	}

	return items, nil
}

func findCartCandidates(order []*html.Node) []*html.Node {
	if rows := filterNodes(order, classed(atom.Tr, itemRowClasses)); len(rows) > 0 {
		return rows
	}
	if blocks := filterNodes(order, classed(atom.Div, itemBlockClasses)); len(blocks) > 0 {
		return blocks
	}
	if blocks := filterNodes(order, classed(atom.Li, itemBlockClasses)); len(blocks) > 0 {
		return blocks
	}

	if tables := filterNodes(order, classed(atom.Table, cartTableClasses)); len(tables) > 0 {
		rows := findAll(tables[0], isElement(atom.Tr))
		if len(rows) > 1 {
			return rows[1:]
		}
	}

	return filterNodes(order, labelledDiv("SKU:"))
}

// ExtractSKU returns the text after "SKU:", or the whole trimmed text
func ExtractSKU(text string) string {
	if _, after, found := strings.Cut(text, "SKU:"); found {
		return strings.TrimSpace(after)
	}
	return strings.TrimSpace(text)
}

// ExtractQuantity returns the first integer in text, defaulting to 1
func ExtractQuantity(text string) int {
	if m := quantityPattern.FindString(text); m != "" {
		if q, err := strconv.Atoi(m); err == nil {
			return q
		}
	}
	return 1
}

// AddPowerProfiles appends a Raspberry Pi 5 (16GB) line when the cart has none,
// then attaches an estimated power profile to every item.
func AddPowerProfiles(items []models.CartItem) []models.CartItem {
	out := make([]models.CartItem, 0, len(items)+1)
	out = append(out, items...)

	hasPi5 := false
	for _, item := range out {
		if strings.Contains(strings.ToLower(item.ProductName), "raspberry pi 5") {
			hasPi5 = true
			break
		}
	}
	if !hasPi5 {
		out = append(out, models.CartItem{
			ProductName: "Raspberry Pi 5 (16GB)",
			SKU:         "RPI5-16GB",
			PartNo:      "RPI5-16GB",
			UnitPrice:   "$80.00",
			Quantity:    1,
			Subtotal:    "$80.00",
		})
	}

	for i := range out {
		profile := PowerProfileFor(out[i].ProductName)
		out[i].Power = &profile
	}
	return out
}

// PowerProfileFor estimates the draw of a product from keywords in its name
func PowerProfileFor(productName string) models.PowerProfile {
	name := strings.ToLower(productName)
	switch {
	case strings.Contains(name, "raspberry pi 5"):
		return models.PowerProfile{Voltage: 5.0, Current: "0.6 - 2.4", Power: "3.0 - 12.0", Notes: "Idle: ~2.7W, Peak: ~12W"}
	case strings.Contains(name, "can") || strings.Contains(name, "mcp2515"):
		return models.PowerProfile{Voltage: 5.0, Current: "0.05 - 0.1", Power: "0.25 - 0.5", Notes: "CAN interface module"}
	case strings.Contains(name, "display") || strings.Contains(name, "lcd") || strings.Contains(name, "screen"):
		return models.PowerProfile{Voltage: 5.0, Current: "0.1 - 0.5", Power: "0.5 - 2.5", Notes: "Display module"}
	case strings.Contains(name, "sensor"):
		return models.PowerProfile{Voltage: 3.3, Current: "0.001 - 0.05", Power: "0.003 - 0.165", Notes: "Sensor module"}
	case strings.Contains(name, "hat") || strings.Contains(name, "expansion"):
		return models.PowerProfile{Voltage: 5.0, Current: "0.05 - 0.2", Power: "0.25 - 1.0", Notes: "HAT/Expansion board"}
	default:
		return models.PowerProfile{Voltage: 5.0, Current: "0.05 - 0.1", Power: "0.25 - 0.5", Notes: "Generic accessory"}
	}
}

// SummarizeCart totals price and power draw and sizes a 5V supply for the cart
func SummarizeCart(items []models.CartItem) models.CartSummary {
	summary := models.CartSummary{Items: items}

	var total int64
	for _, item := range items {
		if cents, ok := utils.ParseCents(item.Subtotal); ok {
			total += cents
		} else if cents, ok := utils.ParseCents(item.UnitPrice); ok {
			total += cents * int64(item.Quantity)
		}

		if item.Power == nil {
			continue
		}
		if lo, hi, ok := utils.ParseRange(item.Power.Power); ok {
			summary.PowerMinW += lo
			summary.PowerMaxW += hi
		}
	}

	summary.Total = utils.FormatUSD(total)
	summary.SupplyAmps = max(3, int(summary.PowerMaxW/5)+1)
	summary.SupplyWatts = max(15, int(summary.PowerMaxW)+5)
	return summary
}

// WriteCartCSV writes items with their power profile columns
func WriteCartCSV(w io.Writer, items []models.CartItem) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CartCSVHeader); err != nil {
		return fmt.Errorf("failed to write cart header: %w", err)
	}

	for _, item := range items {
		row := []string{
			item.ProductName, item.SKU, item.PartNo, item.UnitPrice,
			strconv.Itoa(item.Quantity), item.Subtotal, "", "", "", "",
		}
		if p := item.Power; p != nil {
			row[6] = strconv.FormatFloat(p.Voltage, 'f', 1, 64)
			row[7] = p.Current
			row[8] = p.Power
			row[9] = p.Notes
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write cart row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// DOM helpers

type nodePredicate func(*html.Node) bool

func isElement(a atom.Atom) nodePredicate {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

func classed(a atom.Atom, classes []string) nodePredicate {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != a {
			return false
		}
		for _, c := range strings.Fields(attr(n, "class")) {
			for _, want := range classes {
				if c == want {
					return true
				}
			}
		}
		return false
	}
}

// labelledDiv matches a div whose single string contains label
func labelledDiv(label string) nodePredicate {
	return func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Div {
			return false
		}
		s, ok := singleString(n)
		return ok && strings.Contains(s, label)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// singleString returns the text of n when n holds exactly one string, possibly nested
// inside single-child elements.
func singleString(n *html.Node) (string, bool) {
	for {
		c := n.FirstChild
		if c == nil || c.NextSibling != nil {
			return "", false
		}
		if c.Type == html.TextNode {
			return c.Data, true
		}
		n = c
	}
}

// textOf concatenates the trimmed text nodes below n
func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func elementsInOrder(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func findAll(root *html.Node, match nodePredicate) []*html.Node {
	var out []*html.Node
	for _, n := range elementsInOrder(root) {
		if n != root && match(n) {
			out = append(out, n)
		}
	}
	return out
}

func filterNodes(nodes []*html.Node, match nodePredicate) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if match(n) {
			out = append(out, n)
		}
	}
	return out
}

func findNext(order []*html.Node, from int, match nodePredicate) *html.Node {
	for i := from + 1; i < len(order); i++ {
		if match(order[i]) {
			return order[i]
		}
	}
	return nil
}

func findPrevious(order []*html.Node, from int, match nodePredicate) *html.Node {
	for i := from - 1; i >= 0; i-- {
		if match(order[i]) {
			return order[i]
		}
	}
	return nil
}

func closestAncestor(n *html.Node, a atom.Atom) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == a {
			return p
		}
	}
	return nil
}

func previousSibling(n *html.Node, a atom.Atom) *html.Node {
	for s := n.PrevSibling; s != nil; s = s.PrevSibling {
		if s.Type == html.ElementNode && s.DataAtom == a {
			return s
		}
	}
	return nil
}
