package notifier

const statusChangedPayload = `{
  "action": "edited",
  "projects_v2_item": {
    "id": 112233,
    "node_id": "PVTI_lADOBmV5Xs4AXYZzgK1234",
    "project_node_id": "PVT_kwDOBmV5Xs4AXYZ",
    "content_node_id": "I_kwDOHo1Bq85nPQRs",
    "content_type": "Issue",
    "creator": {"login": "octocat"},
    "created_at": "2024-05-02T08:10:12Z",
    "updated_at": "2024-05-06T14:22:41Z",
    "archived_at": null
  },
  "changes": {
    "field_value": {
      "field_node_id": "PVTSSF_lADOBmV5Xs4AXYZzgPQ1",
      "field_type": "single_select",
      "field_name": "Status",
      "project_number": 7,
      "from": {"id": "f75ad846", "name": "Todo", "color": "GRAY", "description": "This item hasn't been started"},
      "to": {"id": "47fc9ee4", "name": "In Progress", "color": "BLUE", "description": "This is actively being worked on"}
    }
  },
  "organization": {"login": "gimlet-io"},
  "sender": {"login": "octocat", "html_url": "https://github.com/octocat"},
  "installation": {"id": 4242}
}`

const statusSetPayload = `{
  "action": "edited",
  "projects_v2_item": {"node_id": "PVTI_lADOBmV5Xs4AXYZzgK5678", "content_type": "PullRequest"},
  "changes": {
    "field_value": {
      "field_type": "single_select",
      "field_name": "Status",
      "project_number": 7,
      "from": null,
      "to": {"id": "98236657", "name": "Done", "color": "GREEN", "description": null}
    }
  },
  "sender": {"login": "hubot"}
}`

const dateChangedPayload = `{
  "action": "edited",
  "projects_v2_item": {"node_id": "PVTI_lADOBmV5Xs4AXYZzgK9999", "content_type": "Issue"},
  "changes": {
    "field_value": {
      "field_type": "date",
      "field_name": "Due",
      "project_number": 7,
      "from": "2024-05-01T00:00:00+00:00",
      "to": "2024-05-08T00:00:00+00:00"
    }
  },
  "sender": {"login": "octocat"}
}`

const reorderedPayload = `{
  "action": "reordered",
  "projects_v2_item": {"node_id": "PVTI_lADOBmV5Xs4AXYZzgK9999"},
  "changes": {"previous_projects_v2_item_node_id": {"from": "PVTI_a", "to": "PVTI_b"}},
  "sender": {"login": "octocat"}
}`
