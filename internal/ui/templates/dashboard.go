// Package templates renders the dashboard page as templ components so the
// HTTP layer can treat the UI as a regular templ.Component.
package templates

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"

	"shop-dashboard/internal/models"
)

var page = template.Must(template.New("dashboard").Parse(pageHTML))

// Dashboard returns the full dashboard page. Filter controls are populated
// server-side from the dataset's option lists; chart data arrives over the
// JSON API and the SSE refresh stream once the page loads.
func Dashboard(opts models.FilterOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return page.Execute(w, opts)
	})
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>E-commerce Sales Dashboard</title>
<script src="https://cdn.jsdelivr.net/npm/chart.js@4"></script>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>
<style>
:root { --bg: #f5f6fa; --panel: #ffffff; --accent: #4361ee; --text: #22223b; }
* { box-sizing: border-box; margin: 0; }
body { font-family: system-ui, sans-serif; background: var(--bg); color: var(--text); display: flex; min-height: 100vh; }
aside { width: 280px; background: var(--panel); padding: 1.25rem; border-right: 1px solid #e0e0e8; }
aside h2 { font-size: 1rem; margin-bottom: 1rem; }
aside label { display: block; font-size: 0.8rem; font-weight: 600; margin: 0.75rem 0 0.25rem; }
aside input, aside select { width: 100%; padding: 0.35rem; border: 1px solid #ccd; border-radius: 4px; font-size: 0.85rem; }
aside select[multiple] { height: 7rem; }
main { flex: 1; padding: 1.5rem; }
main h1 { font-size: 1.4rem; margin-bottom: 1rem; }
.metric-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(180px, 1fr)); gap: 1rem; margin-bottom: 1.5rem; }
.metric-card { background: var(--panel); border-radius: 8px; padding: 1rem; box-shadow: 0 1px 3px rgba(0,0,0,0.08); }
.metric-label { display: block; font-size: 0.75rem; color: #666; margin-bottom: 0.25rem; }
.metric-card strong { font-size: 1.3rem; }
.chart-grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(420px, 1fr)); gap: 1rem; }
.chart-panel { background: var(--panel); border-radius: 8px; padding: 1rem; box-shadow: 0 1px 3px rgba(0,0,0,0.08); }
.chart-panel h3 { font-size: 0.9rem; margin-bottom: 0.5rem; }
.no-data { grid-column: 1 / -1; background: #fff6e5; border: 1px solid #f0c36d; border-radius: 8px; padding: 1rem; }
.export-link { display: inline-block; margin-top: 1rem; color: var(--accent); font-weight: 600; }
</style>
</head>
<body>
<aside>
<h2>Filter Options</h2>
<form id="filters">
<label for="start">Start date</label>
<input type="date" id="start" name="start" min="{{.MinDate}}" max="{{.MaxDate}}" value="{{.MinDate}}">
<label for="end">End date</label>
<input type="date" id="end" name="end" min="{{.MinDate}}" max="{{.MaxDate}}" value="{{.MaxDate}}">
<label for="category">Categories</label>
<select id="category" name="category" multiple>
{{range .Categories}}<option value="{{.}}">{{.}}</option>
{{end}}</select>
<label for="subcategory">Subcategories</label>
<select id="subcategory" name="subcategory" multiple>
{{range .Subcategories}}<option value="{{.}}">{{.}}</option>
{{end}}</select>
<label for="gender">Genders</label>
<select id="gender" name="gender" multiple>
{{range .Genders}}<option value="{{.}}">{{.}}</option>
{{end}}</select>
<label for="age_group">Age groups</label>
<select id="age_group" name="age_group" multiple>
{{range .AgeGroups}}<option value="{{.}}">{{.}}</option>
{{end}}</select>
<label for="country">Countries</label>
<select id="country" name="country" multiple>
{{range .Countries}}<option value="{{.}}">{{.}}</option>
{{end}}</select>
<label for="payment_method">Payment methods</label>
<select id="payment_method" name="payment_method" multiple>
{{range .PaymentMethods}}<option value="{{.}}">{{.}}</option>
{{end}}</select>
</form>
<a id="export-link" class="export-link" href="/export/orders.csv" download>Download filtered CSV</a>
</aside>
<main>
<h1>E-commerce Sales Dashboard</h1>
<div id="summary-cards" class="metric-grid" data-on-load="@get('/sse/refresh')"></div>
<div class="chart-grid">
<div class="chart-panel"><h3>Sales Over Time</h3><canvas id="chart-daily"></canvas></div>
<div class="chart-panel"><h3>Sales by Category</h3><canvas id="chart-category"></canvas></div>
<div class="chart-panel"><h3>Sales by Subcategory</h3><canvas id="chart-subcategory"></canvas></div>
<div class="chart-panel"><h3>Top 10 Products</h3><canvas id="chart-products"></canvas></div>
<div class="chart-panel"><h3>Sales by Day of Week</h3><canvas id="chart-weekday"></canvas></div>
<div class="chart-panel"><h3>Sales by Country</h3><canvas id="chart-country"></canvas></div>
<div class="chart-panel"><h3>Gender Distribution</h3><canvas id="chart-gender"></canvas></div>
<div class="chart-panel"><h3>Age Group Distribution</h3><canvas id="chart-age"></canvas></div>
<div class="chart-panel"><h3>Payment Methods</h3><canvas id="chart-payment"></canvas></div>
</div>
</main>
<script>
const charts = {};

function filterQuery() {
  const params = new URLSearchParams();
  const form = document.getElementById('filters');
  for (const input of form.querySelectorAll('input[type=date]')) {
    if (input.value) params.append(input.name, input.value);
  }
  for (const select of form.querySelectorAll('select')) {
    for (const opt of select.selectedOptions) params.append(select.name, opt.value);
  }
  return params.toString();
}

function draw(id, type, labels, values, label) {
  if (charts[id]) charts[id].destroy();
  charts[id] = new Chart(document.getElementById(id), {
    type: type,
    data: { labels: labels, datasets: [{ label: label, data: values, borderColor: '#4361ee', backgroundColor: type === 'pie' ? undefined : '#4361ee88' }] },
    options: { responsive: true, plugins: { legend: { display: type === 'pie' } } },
  });
}

async function fetchData(path, query) {
  const res = await fetch(path + (query ? '?' + query : ''));
  const body = await res.json();
  if (!body.success) throw new Error('request failed: ' + path);
  return body.data;
}

async function refresh() {
  const query = filterQuery();
  document.getElementById('export-link').href = '/export/orders.csv' + (query ? '?' + query : '');

  const summary = await fetchData('/api/summary', query);
  const cards = document.getElementById('summary-cards');
  if (summary.order_count === 0) {
    cards.innerHTML = '<div class="no-data">No orders match the selected filters. Adjust your selection.</div>';
  } else {
    cards.innerHTML =
      '<div class="metric-card"><span class="metric-label">Total Revenue</span><strong>$' + summary.total_revenue.toFixed(2) + '</strong></div>' +
      '<div class="metric-card"><span class="metric-label">Orders</span><strong>' + summary.order_count + '</strong></div>' +
      '<div class="metric-card"><span class="metric-label">Avg Order Value</span><strong>$' + summary.avg_order_value.toFixed(2) + '</strong></div>' +
      '<div class="metric-card"><span class="metric-label">Customers</span><strong>' + summary.customer_count + '</strong></div>';
  }

  const daily = await fetchData('/api/revenue-daily', query);
  draw('chart-daily', 'line', daily.map(p => p.period), daily.map(p => p.revenue), 'Revenue');

  const weekday = await fetchData('/api/revenue-dow', query);
  draw('chart-weekday', 'bar', weekday.map(p => p.period), weekday.map(p => p.revenue), 'Revenue');

  const products = await fetchData('/api/top-products', query);
  draw('chart-products', 'bar', products.map(p => p.product_name), products.map(p => p.revenue), 'Revenue');

  const dims = [
    ['category', 'chart-category', 'bar'],
    ['subcategory', 'chart-subcategory', 'bar'],
    ['country', 'chart-country', 'bar'],
    ['gender', 'chart-gender', 'pie'],
    ['age-group', 'chart-age', 'bar'],
    ['payment-method', 'chart-payment', 'pie'],
  ];
  for (const [dim, id, type] of dims) {
    const data = await fetchData('/api/breakdown/' + dim, query);
    draw(id, type, data.map(d => d.value), data.map(d => dim === 'gender' || dim === 'payment-method' ? d.orders : d.revenue), dim);
  }
}

async function syncSubcategories() {
  const params = new URLSearchParams();
  for (const opt of document.getElementById('category').selectedOptions) params.append('category', opt.value);
  const opts = await fetchData('/api/filter-options', params.toString());
  const select = document.getElementById('subcategory');
  const keep = new Set([...select.selectedOptions].map(o => o.value));
  select.innerHTML = '';
  for (const sub of opts.subcategories) {
    const opt = document.createElement('option');
    opt.value = sub;
    opt.textContent = sub;
    opt.selected = keep.has(sub);
    select.appendChild(opt);
  }
}

document.getElementById('filters').addEventListener('change', async (ev) => {
  if (ev.target.id === 'category') await syncSubcategories();
  await refresh().catch(console.error);
});

refresh().catch(console.error);
</script>
</body>
</html>
`
