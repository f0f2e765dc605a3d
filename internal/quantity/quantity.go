// Package quantity serbest metin miktar alanlarını ("5 tabak") tam sayıya çevirir.
package quantity

import (
	"strconv"
	"strings"
)

// Parse ilk kelimeyi tam sayı olarak okur. Boş ya da okunamayan değer 0 döner;
// hata yüzeye çıkarılmaz. Negatif değerler olduğu gibi döner, kontrolü yazan taraf yapar.
func Parse(text string) int {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0
	}
	return n
}
