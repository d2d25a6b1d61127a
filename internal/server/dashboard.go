package server

// dashboardHTML polls /api/snapshot once a second and re-renders, the same
// refresh model as the reference scanner UI.
const dashboardHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Momentum Scanner</title>
<style>
  body { font-family: sans-serif; margin: 2rem; background: #111; color: #eee; }
  h1 { font-size: 1.4rem; }
  .status { display: flex; gap: 2rem; margin-bottom: 1rem; }
  .status div { background: #1d1d1d; padding: 0.6rem 1rem; border-radius: 6px; }
  .tables { display: flex; gap: 2rem; }
  .tables section { flex: 1; }
  table { width: 100%; border-collapse: collapse; }
  th, td { text-align: left; padding: 0.3rem 0.6rem; border-bottom: 1px solid #333; }
  .pos h2 { color: #4caf50; }
  .neg h2 { color: #ef5350; }
  .muted { color: #888; }
</style>
</head>
<body>
<h1>Real-time Momentum Scanner</h1>
<div class="status">
  <div>Status: <span id="connected">...</span></div>
  <div>Tracked symbols: <span id="symbols">0</span></div>
  <div>Last update: <span id="updated">-</span></div>
  <div>Window: <span id="window">-</span></div>
</div>
<div class="tables">
  <section class="pos">
    <h2>Positive spikes</h2>
    <div id="positive" class="muted">Scanning for bullish moves...</div>
  </section>
  <section class="neg">
    <h2>Negative drops</h2>
    <div id="negative" class="muted">Scanning for bearish moves...</div>
  </section>
</div>
<script>
function renderTable(alerts) {
  if (!alerts || alerts.length === 0) { return null; }
  var rows = alerts.map(function (a) {
    return '<tr><td>' + a.time + '</td><td>' + a.symbol + '</td><td>' +
      a.move_percent + '</td><td>' + a.last_price + '</td></tr>';
  }).join('');
  return '<table><tr><th>Time</th><th>Symbol</th><th>Move%</th><th>LTP</th></tr>' +
    rows + '</table>';
}
async function refresh() {
  try {
    var res = await fetch('/api/snapshot');
    var snap = await res.json();
    document.getElementById('connected').textContent = snap.connected ? 'running' : 'stopped';
    document.getElementById('symbols').textContent = snap.tracked_symbol_count;
    document.getElementById('updated').textContent = snap.last_update;
    document.getElementById('window').textContent =
      snap.lookback_seconds + 's / ' + snap.threshold_percent + '%';
    var pos = renderTable(snap.positive_alerts);
    if (pos) { document.getElementById('positive').innerHTML = pos; }
    var neg = renderTable(snap.negative_alerts);
    if (neg) { document.getElementById('negative').innerHTML = neg; }
  } catch (e) { /* keep polling */ }
}
refresh();
setInterval(refresh, 1000);
</script>
</body>
</html>
`
