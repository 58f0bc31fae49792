package publish

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"studhub/internal/model"
)

func kindTitle(k model.ListingKind) string {
	if k == model.ListingKindService {
		return "Услуга"
	}
	return "Аренда"
}

func ratingText(r float64) string {
	if r <= 0 {
		return "нет оценок"
	}
	return strconv.FormatFloat(r, 'f', 1, 64) + " / 5"
}

// ListingBodyMarkdown renders a listing's details and description without a
// top-level heading. The TUI quick view shows it under its own title.
func ListingBodyMarkdown(l model.Listing) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("- **Тип:** " + kindTitle(l.Kind))
	writeLn("- **Категория:** " + l.Category)
	writeLn("- **Школа:** " + l.Location)
	writeLn("- **Цена:** " + strconv.Itoa(l.Price) + " ₸")
	writeLn("- **Рейтинг:** " + ratingText(l.Rating))
	if s := strings.TrimSpace(l.Seller); s != "" {
		writeLn("- **Продавец:** " + s)
	}
	if desc := strings.TrimSpace(l.Description); desc != "" {
		writeLn("")
		writeLn(desc)
	}
	return buf.String()
}

func RenderListingMarkdown(l model.Listing) string {
	var buf bytes.Buffer
	buf.WriteString("# " + strings.TrimSpace(l.Title) + "\n\n")
	buf.WriteString(ListingBodyMarkdown(l))
	buf.WriteString("\n<!-- " + l.ID + " -->\n")
	return buf.String()
}

// RenderCatalogIndexMarkdown lists listings grouped by category (in the
// filter's category order), each linking to listings/<id>.md.
func RenderCatalogIndexMarkdown(title string, ls []model.Listing, categoryOrder []string) string {
	rank := map[string]int{}
	for i, c := range categoryOrder {
		rank[c] = i
	}
	groups := map[string][]model.Listing{}
	var cats []string
	for _, l := range ls {
		if _, ok := groups[l.Category]; !ok {
			cats = append(cats, l.Category)
		}
		groups[l.Category] = append(groups[l.Category], l)
	}
	sort.SliceStable(cats, func(i, j int) bool {
		ri, iok := rank[cats[i]]
		rj, jok := rank[cats[j]]
		if iok != jok {
			return iok
		}
		if ri != rj {
			return ri < rj
		}
		return cats[i] < cats[j]
	})

	var buf bytes.Buffer
	buf.WriteString("# " + title + "\n\n")
	if len(ls) == 0 {
		buf.WriteString("_Пока нет объявлений._\n")
		return buf.String()
	}
	for _, c := range cats {
		buf.WriteString("## " + c + "\n\n")
		for _, l := range groups[c] {
			buf.WriteString("- [" + l.Title + "](listings/" + l.ID + ".md) · " +
				strconv.Itoa(l.Price) + " ₸ · " + l.Location + "\n")
		}
		buf.WriteString("\n")
	}
	return buf.String()
}
