package store

import (
	"context"
	"fmt"
	"io"
	"time"

	"studhub/internal/model"

	"gopkg.in/yaml.v3"
)

// listingsFile is the YAML import format:
//
//	listings:
//	  - title: Ноутбук Lenovo
//	    kind: rental
//	    category: Электроника
//	    location: Binom 2 (BI-2)
//	    price: 2500
type listingsFile struct {
	Listings []model.Listing `yaml:"listings"`
}

// ImportYAML validates every listing in r and stores them in one transaction.
// Nothing is written when any listing is invalid.
func (s Store) ImportYAML(ctx context.Context, r io.Reader) (int, error) {
	var doc listingsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, fmt.Errorf("parse listings yaml: %w", err)
	}
	return s.addAll(ctx, doc.Listings)
}

// Seed fills an empty catalog with demo listings. A non-empty catalog is left alone.
func (s Store) Seed(ctx context.Context) (int, error) {
	res, err := s.List(ctx, Page{Limit: 1})
	if err != nil {
		return 0, err
	}
	if res.Total > 0 {
		return 0, nil
	}
	return s.addAll(ctx, demoListings(time.Now().UTC()))
}

func (s Store) addAll(ctx context.Context, ls []model.Listing) (int, error) {
	prepared := make([]model.Listing, 0, len(ls))
	for i, l := range ls {
		if l.Kind == "" {
			l.Kind = model.ListingKindRental
		}
		if err := validateListing(l); err != nil {
			return 0, fmt.Errorf("listing #%d (%q): %w", i+1, l.Title, err)
		}
		if l.ID == "" {
			l.ID = NewListingID()
		}
		if l.CreatedAt.IsZero() {
			l.CreatedAt = time.Now().UTC()
		}
		prepared = append(prepared, l)
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, l := range prepared {
		if err := insertListing(ctx, tx, l); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(prepared), nil
}

func demoListings(now time.Time) []model.Listing {
	at := func(daysAgo int) time.Time { return now.Add(-time.Duration(daysAgo) * 24 * time.Hour) }
	return []model.Listing{
		{Kind: model.ListingKindRental, Title: "Ноутбук Lenovo ThinkPad", Description: "Для учёбы и программирования. **Зарядка в комплекте.**", Category: "Электроника", Location: "Binom 2 (BI-2)", Price: 2500, Rating: 4.8, Seller: "Айдар", CreatedAt: at(1)},
		{Kind: model.ListingKindRental, Title: "Графический калькулятор Casio", Description: "Для олимпиад по математике.", Category: "Электроника", Location: "Binom 1 (BI-1)", Price: 600, Rating: 4.2, Seller: "Дана", CreatedAt: at(3)},
		{Kind: model.ListingKindRental, Title: "Учебники по физике 10–11 класс", Description: "Комплект из трёх книг, без пометок.", Category: "Книги и учебники", Location: "NIS Astana", Price: 300, Rating: 4.9, Seller: "Мадина", CreatedAt: at(2)},
		{Kind: model.ListingKindRental, Title: "Настольная лампа", Description: "Тёплый свет, USB-зарядка.", Category: "Мебель", Location: "Binom 3 (BI-3)", Price: 200, Rating: 3.6, Seller: "Ержан", CreatedAt: at(7)},
		{Kind: model.ListingKindRental, Title: "Костюм для выпускного", Description: "Размер M, после химчистки.", Category: "Одежда", Location: "KTL Almaty", Price: 3500, Rating: 4.5, Seller: "Алия", CreatedAt: at(5)},
		{Kind: model.ListingKindRental, Title: "Велосипед горный", Description: "На выходные, шлем в подарок.", Category: "Спорт", Location: "Binom 4 (BI-4)", Price: 1500, Rating: 4.1, Seller: "Тимур", CreatedAt: at(4)},
		{Kind: model.ListingKindService, Title: "Репетитор по алгебре", Description: "Подготовка к ЕНТ, 60 минут онлайн или в школе.", Category: "Репетиторство", Location: "Binom 2 (BI-2)", Price: 4000, Rating: 5, Seller: "Мадина", CreatedAt: at(6)},
		{Kind: model.ListingKindService, Title: "Ремонт смартфонов", Description: "Замена экрана и батареи, диагностика бесплатно.", Category: "Ремонт техники", Location: "NIS Astana", Price: 8000, Rating: 4.4, Seller: "Айдар", CreatedAt: at(8)},
		{Kind: model.ListingKindRental, Title: "Комната рядом с кампусом", Description: "Посуточно, 10 минут пешком до школы.", Category: "Аренда жилья", Location: "Binom 1 (BI-1)", Price: 9500, Rating: 3.9, Seller: "Гульнара", CreatedAt: at(10)},
		{Kind: model.ListingKindService, Title: "Английский: разговорный клуб", Description: "Группа до 5 человек.", Category: "Репетиторство", Location: "KTL Almaty", Price: 2000, Rating: 0, Seller: "Дана", CreatedAt: at(0)},
	}
}
