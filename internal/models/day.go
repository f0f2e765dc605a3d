package models

import "time"

// Now test içinde sabit bir saat vermek için değiştirilebilir.
var Now = time.Now

// Location "bugün" hesabında kullanılan saat dilimi.
var Location = time.Local

// DayOf verilen anın takvim gününü UTC gece yarısı olarak döndürür.
// Tarih kolonları bu biçimde saklanır ki eşitlik sorguları sürücüden bağımsız çalışsın.
func DayOf(t time.Time) time.Time {
	y, m, d := t.In(Location).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Today() time.Time {
	return DayOf(Now())
}

// ParseDay "2006-01-02" biçimindeki tarihi gün değerine çevirir.
func ParseDay(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// DayKey saklanan gün değerini "2006-01-02" anahtarına çevirir.
func DayKey(day time.Time) string {
	return day.UTC().Format("2006-01-02")
}

// Weekday Pazartesi=0 ... Pazar=6.
func Weekday(day time.Time) int {
	return (int(day.UTC().Weekday()) + 6) % 7
}
