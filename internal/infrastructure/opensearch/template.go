// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

// productQuery is the data rendered into queryProductsSource
type productQuery struct {
	From      int
	Size      int
	ID        int64
	Available *bool
	OwnerID   string
	Terms     string
	Fields    []string
	Interests []int64
	Genres    []int64
}

const queryProductsSource = `{
  "from": {{ .From }},
  "size": {{ .Size }},
  "track_total_hits": true,
  "query": {
    "bool": {
      "filter": [
        {
          "exists": {"field": "id"}
        }
        {{- with .Available }},
        {
          "term": {"available": {{ json . }}}
        }
        {{- end }}
        {{- if .OwnerID }},
        {
          "term": {"owner_id": {{ json .OwnerID }}}
        }
        {{- end }}
        {{- if .ID }},
        {
          "term": {"id": {{ .ID }}}
        }
        {{- end }}
      ]
      {{- if and .Terms .Fields }},
      "must": [
        {
          "multi_match": {
            "query": {{ json .Terms }},
            "fields": {{ json .Fields }},
            "operator": "or"
          }
        }
      ]
      {{- end }}
      {{- if or .Interests .Genres }},
      "minimum_should_match": 1,
      "should": [
        {{- if .Interests }}
        {
          "terms": {"interest_ids": {{ json .Interests }}}
        }
        {{- end }}
        {{- if and .Interests .Genres }},{{ end }}
        {{- if .Genres }}
        {
          "terms": {"genre_ids": {{ json .Genres }}}
        }
        {{- end }}
      ]
      {{- end }}
    }
  },
  "sort": [
    {"id": "asc"}
  ]
}`

const queryInterestsSource = `{
  "size": {{ .Size }},
  "query": {
    "match_all": {}
  },
  "sort": [
    {"id": "asc"}
  ]
}`
