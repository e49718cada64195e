package dto

// Response DTOs

type JadwalResponse struct {
	ID         uint   `json:"id"`
	Dokter     string `json:"dokter"`
	Hari       string `json:"hari"`
	JamMulai   string `json:"jam_mulai"`
	JamSelesai string `json:"jam_selesai"`
}

type PoliResponse struct {
	ID           uint   `json:"id"`
	Nama         string `json:"nama"`
	Deskripsi    string `json:"deskripsi"`
	DokterAktif  bool   `json:"dokter_aktif"`
	SumberStatus string `json:"sumber_status"`
}

type PoliListResponse struct {
	Poli  []PoliResponse `json:"poli"`
	Total int            `json:"total"`
}

// PoliDetailResponse is the payload behind the poli detail page. AntreanUser
// is set for a logged-in patient with a waiting entry; AntreanList is set
// for admins only.
type PoliDetailResponse struct {
	Poli         PoliResponse        `json:"poli"`
	Jadwal       []JadwalResponse    `json:"jadwal"`
	SumberStatus string              `json:"sumber_status"`
	AntreanUser  *AntreanResponse    `json:"antrean_user,omitempty"`
	AntreanList  []QueueItemResponse `json:"antrean_list,omitempty"`
}
